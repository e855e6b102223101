package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/enbat/horizon-server-go/internal/model"
)

type AccountRepository interface {
	FindByID(ctx context.Context, id int64) (*model.AdminAccount, error)
	// FindByEmail matches on exact equality. The registration-time super-admin
	// comparison is case-insensitive while this lookup is not; the mismatch is
	// inherited behavior, kept until product decides otherwise.
	FindByEmail(ctx context.Context, email string) (*model.AdminAccount, error)
	FindAll(ctx context.Context) ([]model.AdminAccount, error)
	Create(ctx context.Context, params model.CreateAdminAccountParams) (*model.AdminAccount, error)
	UpdateStatus(ctx context.Context, id int64, status model.AccountStatus) (*model.AdminAccount, error)
}

type accountRepo struct {
	db sqlxDB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) FindByID(ctx context.Context, id int64) (*model.AdminAccount, error) {
	var account model.AdminAccount
	err := r.db.GetContext(ctx, &account, `
		SELECT * FROM admin_accounts WHERE id = $1
	`, id)
	return HandleNotFound(&account, err)
}

func (r *accountRepo) FindByEmail(ctx context.Context, email string) (*model.AdminAccount, error) {
	var account model.AdminAccount
	err := r.db.GetContext(ctx, &account, `
		SELECT * FROM admin_accounts WHERE email = $1
	`, email)
	return HandleNotFound(&account, err)
}

func (r *accountRepo) FindAll(ctx context.Context) ([]model.AdminAccount, error) {
	var accounts []model.AdminAccount
	err := r.db.SelectContext(ctx, &accounts, `
		SELECT * FROM admin_accounts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepo) Create(ctx context.Context, params model.CreateAdminAccountParams) (*model.AdminAccount, error) {
	var account model.AdminAccount
	err := r.db.GetContext(ctx, &account, `
		INSERT INTO admin_accounts (email, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING *
	`, params.Email, params.UserID, params.Status)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) UpdateStatus(ctx context.Context, id int64, status model.AccountStatus) (*model.AdminAccount, error) {
	var account model.AdminAccount
	err := r.db.GetContext(ctx, &account, `
		UPDATE admin_accounts SET status = $2
		WHERE id = $1
		RETURNING *
	`, id, status)
	return HandleNotFound(&account, err)
}
