package dto

type AddUserBookRequest struct {
	BookID        string `json:"book_id" validate:"required,uuid"`
	ReadingStatus string `json:"reading_status" validate:"required"`
	Progress      int    `json:"progress"`
}

type UpdateUserBookRequest struct {
	ReadingStatus string `json:"reading_status" validate:"required"`
	Progress      int    `json:"progress"`
}
