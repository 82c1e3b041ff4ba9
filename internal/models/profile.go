package models

import "time"

// Profile is the user-editable record supplementing the auth identity. One
// row per user; the primary key is the auth user id. Optional fields are
// pointers so that clearing them stores NULL rather than an empty string.
type Profile struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Email           string    `json:"email"`
	Nombre          string    `json:"nombre"`
	FechaNacimiento *string   `json:"fecha_nacimiento"`
	Telefono        *string   `json:"telefono"`
	AvatarURL       *string   `json:"avatar_url"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// UpdateProfileRequest defines the editable profile fields. Optional fields
// submitted as empty strings are normalized to unset, not stored empty.
type UpdateProfileRequest struct {
	Nombre          string `json:"nombre" validate:"required,max=100"`
	FechaNacimiento string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Telefono        string `json:"telefono" validate:"omitempty,max=30"`
	AvatarURL       string `json:"avatar_url" validate:"omitempty,url"`
}
