package dto

type CreateBookRequest struct {
	Title           string   `json:"title" validate:"required,max=255"`
	Description     string   `json:"description"`
	CoverURL        string   `json:"cover_url" validate:"omitempty,url"`
	Language        string   `json:"language" validate:"omitempty,max=50"`
	PublicationYear int      `json:"publication_year" validate:"omitempty,gte=0"`
	AuthorIDs       []string `json:"author_ids" validate:"omitempty,dive,uuid"`
	PublisherIDs    []string `json:"publisher_ids" validate:"omitempty,dive,uuid"`
	CategoryIDs     []string `json:"category_ids" validate:"omitempty,dive,uuid"`
}

type UpdateBookRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=255"`
	Description     *string `json:"description"`
	CoverURL        *string `json:"cover_url" validate:"omitempty,url"`
	Language        *string `json:"language" validate:"omitempty,max=50"`
	PublicationYear *int    `json:"publication_year" validate:"omitempty,gte=0"`
}

type CreateAuthorRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Bio  string `json:"bio"`
}

type CreatePublisherRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Website string `json:"website" validate:"omitempty,url"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
