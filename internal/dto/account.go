package dto

// Account Request DTOs

// AccountRequest is the payload for creating or updating an account.
// Required fields are checked by the service so the caller gets the domain message.
type AccountRequest struct {
	Name string `json:"name" validate:"max=100"`
	Type string `json:"type" validate:"max=20"`
}

// Category Request DTOs

// CategoryRequest is the payload for creating or renaming a category
type CategoryRequest struct {
	Name string  `json:"name" validate:"max=100"`
	Type *string `json:"type,omitempty" validate:"omitempty,max=50"`
}
