package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/enbat/horizon-server-go/internal/model"
)

type ServiceTypeRepository interface {
	FindAll(ctx context.Context) ([]model.ServiceType, error)
	Create(ctx context.Context, params model.CreateServiceTypeParams) (*model.ServiceType, error)
	Update(ctx context.Context, id int64, params model.UpdateServiceTypeParams) (*model.ServiceType, error)
	Delete(ctx context.Context, id int64) error
}

type serviceTypeRepo struct {
	db sqlxDB
}

func NewServiceTypeRepository(db *sqlx.DB) ServiceTypeRepository {
	return &serviceTypeRepo{db: db}
}

func (r *serviceTypeRepo) FindAll(ctx context.Context) ([]model.ServiceType, error) {
	var types []model.ServiceType
	err := r.db.SelectContext(ctx, &types, `
		SELECT * FROM service_type
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *serviceTypeRepo) Create(ctx context.Context, params model.CreateServiceTypeParams) (*model.ServiceType, error) {
	var serviceType model.ServiceType
	err := r.db.GetContext(ctx, &serviceType, `
		INSERT INTO service_type (name, description)
		VALUES ($1, $2)
		RETURNING *
	`, params.Name, params.Description)
	if err != nil {
		return nil, err
	}
	return &serviceType, nil
}

func (r *serviceTypeRepo) Update(ctx context.Context, id int64, params model.UpdateServiceTypeParams) (*model.ServiceType, error) {
	var serviceType model.ServiceType
	err := r.db.GetContext(ctx, &serviceType, `
		UPDATE service_type SET
			name = $2,
			description = $3
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.Description)
	return HandleNotFound(&serviceType, err)
}

func (r *serviceTypeRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM service_type WHERE id = $1`, id)
	return err
}
