package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/enbat/horizon-server-go/internal/model"
)

type ProjectRepository interface {
	FindAll(ctx context.Context) ([]model.Project, error)
	Create(ctx context.Context, params model.CreateProjectParams) (*model.Project, error)
	Update(ctx context.Context, id int64, params model.UpdateProjectParams) (*model.Project, error)
	Delete(ctx context.Context, id int64) error
}

type projectRepo struct {
	db sqlxDB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) FindAll(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.SelectContext(ctx, &projects, `
		SELECT p.*, st.name AS service_type_name
		FROM projects p
		LEFT JOIN service_type st ON st.id = p.service_type
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepo) Create(ctx context.Context, params model.CreateProjectParams) (*model.Project, error) {
	var project model.Project
	err := r.db.GetContext(ctx, &project, `
		INSERT INTO projects (title, subtitle, description, logo_url, service_type, is_completed, year)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *
	`, params.Title, params.Subtitle, params.Description, params.LogoURL,
		params.ServiceType, params.IsCompleted, params.Year)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) Update(ctx context.Context, id int64, params model.UpdateProjectParams) (*model.Project, error) {
	var project model.Project
	err := r.db.GetContext(ctx, &project, `
		UPDATE projects SET
			title = $2,
			subtitle = $3,
			description = $4,
			logo_url = $5,
			service_type = $6,
			is_completed = $7,
			year = $8
		WHERE id = $1
		RETURNING *
	`, id, params.Title, params.Subtitle, params.Description, params.LogoURL,
		params.ServiceType, params.IsCompleted, params.Year)
	return HandleNotFound(&project, err)
}

func (r *projectRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}
