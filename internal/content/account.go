package content

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/enbat/horizon-server-go/internal/errors"
	"github.com/enbat/horizon-server-go/internal/model"
	"github.com/enbat/horizon-server-go/internal/repository"
)

// AccountService manages the admin_accounts rows. Unlike the content
// resources it never creates or deletes rows here: registration inserts them
// and nothing removes them. Confirm/Unconfirm flip the status of exactly one
// row, and the super-admin row is immutable through this path.
type AccountService struct {
	repo            repository.AccountRepository
	superAdminEmail string
}

func NewAccountService(repo repository.AccountRepository, superAdminEmail string) *AccountService {
	return &AccountService{repo: repo, superAdminEmail: superAdminEmail}
}

func (s *AccountService) List(ctx context.Context) ([]model.AdminAccount, error) {
	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.RemoteQuery("list admin accounts", err)
	}
	if accounts == nil {
		accounts = []model.AdminAccount{}
	}
	return accounts, nil
}

func (s *AccountService) Confirm(ctx context.Context, id int64) ([]model.AdminAccount, error) {
	return s.setStatus(ctx, id, model.AccountStatusConfirmed)
}

func (s *AccountService) Unconfirm(ctx context.Context, id int64) ([]model.AdminAccount, error) {
	return s.setStatus(ctx, id, model.AccountStatusPending)
}

func (s *AccountService) setStatus(ctx context.Context, id int64, status model.AccountStatus) ([]model.AdminAccount, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.RemoteQuery("find admin account", err)
	}
	if account == nil {
		return nil, apperrors.NotFound("Admin account")
	}
	if s.isSuperAdmin(account) {
		return nil, apperrors.Forbidden("The super admin account cannot be modified")
	}

	if _, err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperrors.RemoteQuery("update admin account status", err)
	}
	log.Info().Int64("id", id).Str("status", string(status)).Msg("admin account status changed")

	return s.List(ctx)
}

func (s *AccountService) isSuperAdmin(account *model.AdminAccount) bool {
	return account.Email != nil &&
		s.superAdminEmail != "" &&
		strings.EqualFold(*account.Email, s.superAdminEmail)
}
