package model

import (
	"time"
)

type Service struct {
	ID          int64     `db:"id" json:"id"`
	Title       *string   `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	Icon        *string   `db:"icon" json:"icon"`
	ServiceType *int64    `db:"service_type" json:"serviceType"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type CreateServiceParams struct {
	Title       string `validate:"required"`
	Description *string
	Icon        *string
	ServiceType *int64
}

type UpdateServiceParams struct {
	Title       string `validate:"required"`
	Description *string
	Icon        *string
	ServiceType *int64
}
