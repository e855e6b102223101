package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/enbat/horizon-server-go/internal/model"
)

type ServiceRepository interface {
	FindAll(ctx context.Context) ([]model.Service, error)
	Create(ctx context.Context, params model.CreateServiceParams) (*model.Service, error)
	Update(ctx context.Context, id int64, params model.UpdateServiceParams) (*model.Service, error)
	Delete(ctx context.Context, id int64) error
}

type serviceRepo struct {
	db sqlxDB
}

func NewServiceRepository(db *sqlx.DB) ServiceRepository {
	return &serviceRepo{db: db}
}

func (r *serviceRepo) FindAll(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	err := r.db.SelectContext(ctx, &services, `
		SELECT * FROM services
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepo) Create(ctx context.Context, params model.CreateServiceParams) (*model.Service, error) {
	var service model.Service
	err := r.db.GetContext(ctx, &service, `
		INSERT INTO services (title, description, icon, service_type)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.Title, params.Description, params.Icon, params.ServiceType)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepo) Update(ctx context.Context, id int64, params model.UpdateServiceParams) (*model.Service, error) {
	var service model.Service
	err := r.db.GetContext(ctx, &service, `
		UPDATE services SET
			title = $2,
			description = $3,
			icon = $4,
			service_type = $5
		WHERE id = $1
		RETURNING *
	`, id, params.Title, params.Description, params.Icon, params.ServiceType)
	return HandleNotFound(&service, err)
}

func (r *serviceRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	return err
}
