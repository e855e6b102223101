package model

import (
	"time"
)

type ServiceType struct {
	ID          int64     `db:"id" json:"id"`
	Name        *string   `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type CreateServiceTypeParams struct {
	Name        string `validate:"required"`
	Description *string
}

type UpdateServiceTypeParams struct {
	Name        string `validate:"required"`
	Description *string
}
