package dto

type CreateReviewRequest struct {
	BookID  string `json:"book_id" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title   string `json:"title" validate:"max=255"`
	Content string `json:"content"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Content *string `json:"content"`
}

type CreateBlogRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
	CoverURL string `json:"cover_url" validate:"omitempty,url"`
}

type UpdateBlogRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=255"`
	Content  *string `json:"content"`
	CoverURL *string `json:"cover_url" validate:"omitempty,url"`
}

type CreateFeedbackRequest struct {
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

type AddWatchlistRequest struct {
	BookID string `json:"book_id" validate:"required,uuid"`
	Note   string `json:"note" validate:"max=500"`
}

type SubscribeRequest struct {
	AuthorID string `json:"author_id" validate:"required,uuid"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
