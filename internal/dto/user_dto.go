package dto

// UpdateProfileRequest uses pointers so omitted fields are left untouched.
type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=100"`
	FullName  *string `json:"full_name" validate:"omitempty,max=255"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}
