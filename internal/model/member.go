package model

import (
	"time"
)

type Member struct {
	ID          int64     `db:"id" json:"id"`
	Name        *string   `db:"name" json:"name"`
	Role        *string   `db:"role" json:"role"`
	Description *string   `db:"description" json:"description"`
	ImageURL    *string   `db:"image_url" json:"imageUrl"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type CreateMemberParams struct {
	Name        string `validate:"required"`
	Role        *string
	Description *string
	ImageURL    *string
}

type UpdateMemberParams struct {
	Name        string `validate:"required"`
	Role        *string
	Description *string
	ImageURL    *string
}
