package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/enbat/horizon-server-go/internal/model"
)

type MemberRepository interface {
	FindAll(ctx context.Context) ([]model.Member, error)
	Create(ctx context.Context, params model.CreateMemberParams) (*model.Member, error)
	Update(ctx context.Context, id int64, params model.UpdateMemberParams) (*model.Member, error)
	Delete(ctx context.Context, id int64) error
}

type memberRepo struct {
	db sqlxDB
}

func NewMemberRepository(db *sqlx.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) FindAll(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := r.db.SelectContext(ctx, &members, `
		SELECT * FROM members
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepo) Create(ctx context.Context, params model.CreateMemberParams) (*model.Member, error) {
	var member model.Member
	err := r.db.GetContext(ctx, &member, `
		INSERT INTO members (name, role, description, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.Name, params.Role, params.Description, params.ImageURL)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) Update(ctx context.Context, id int64, params model.UpdateMemberParams) (*model.Member, error) {
	var member model.Member
	err := r.db.GetContext(ctx, &member, `
		UPDATE members SET
			name = $2,
			role = $3,
			description = $4,
			image_url = $5
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.Role, params.Description, params.ImageURL)
	return HandleNotFound(&member, err)
}

func (r *memberRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	return err
}
