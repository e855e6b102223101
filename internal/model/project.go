package model

import (
	"time"
)

type Project struct {
	ID          int64     `db:"id" json:"id"`
	Title       *string   `db:"title" json:"title"`
	Subtitle    *string   `db:"subtitle" json:"subtitle"`
	Description *string   `db:"description" json:"description"`
	LogoURL     *string   `db:"logo_url" json:"logoUrl"`
	ServiceType *int64    `db:"service_type" json:"serviceType"`
	IsCompleted bool      `db:"is_completed" json:"isCompleted"`
	Year        *int64    `db:"year" json:"year"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	// Joined from service_type for list views; not a column of projects.
	ServiceTypeName *string `db:"service_type_name" json:"serviceTypeName,omitempty"`
}

type CreateProjectParams struct {
	Title       string `validate:"required"`
	Subtitle    *string
	Description *string
	LogoURL     *string
	ServiceType *int64
	IsCompleted bool
	Year        *int64
}

type UpdateProjectParams struct {
	Title       string `validate:"required"`
	Subtitle    *string
	Description *string
	LogoURL     *string
	ServiceType *int64
	IsCompleted bool
	Year        *int64
}
