package handler

import (
	"context"
	"errors"

	apperrors "github.com/enbat/horizon-server-go/internal/errors"
	"github.com/enbat/horizon-server-go/internal/identity"
	"github.com/enbat/horizon-server-go/internal/model"
)

// stubIdentity accepts one fixed credential pair and one fixed token.
type stubIdentity struct {
	email    string
	password string
	token    string
	user     *identity.User

	signUpCalls  int
	signOutCalls int
}

func (s *stubIdentity) SignUp(ctx context.Context, email, password string) (*identity.User, error) {
	s.signUpCalls++
	if email == s.email {
		return nil, apperrors.Auth("User already registered")
	}
	return &identity.User{ID: "uid-new", Email: email}, nil
}

func (s *stubIdentity) SignInWithPassword(ctx context.Context, email, password string) (string, error) {
	if email != s.email || password != s.password {
		return "", apperrors.Auth("Invalid login credentials")
	}
	return s.token, nil
}

func (s *stubIdentity) SignOut(ctx context.Context, token string) error {
	s.signOutCalls++
	if token != s.token {
		return errors.New("unknown token")
	}
	return nil
}

func (s *stubIdentity) GetUser(ctx context.Context, token string) (*identity.User, error) {
	if token != s.token {
		return nil, apperrors.Auth("invalid JWT")
	}
	return s.user, nil
}

// stubAccountRepo holds accounts in memory keyed by insertion order.
type stubAccountRepo struct {
	accounts []model.AdminAccount
}

func (s *stubAccountRepo) FindByID(ctx context.Context, id int64) (*model.AdminAccount, error) {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return &s.accounts[i], nil
		}
	}
	return nil, nil
}

func (s *stubAccountRepo) FindByEmail(ctx context.Context, email string) (*model.AdminAccount, error) {
	for i := range s.accounts {
		if s.accounts[i].Email != nil && *s.accounts[i].Email == email {
			return &s.accounts[i], nil
		}
	}
	return nil, nil
}

func (s *stubAccountRepo) FindAll(ctx context.Context) ([]model.AdminAccount, error) {
	return s.accounts, nil
}

func (s *stubAccountRepo) Create(ctx context.Context, params model.CreateAdminAccountParams) (*model.AdminAccount, error) {
	email := params.Email
	account := model.AdminAccount{
		ID:     int64(len(s.accounts) + 1),
		Email:  &email,
		UserID: &params.UserID,
		Status: params.Status,
	}
	s.accounts = append(s.accounts, account)
	return &account, nil
}

func (s *stubAccountRepo) UpdateStatus(ctx context.Context, id int64, status model.AccountStatus) (*model.AdminAccount, error) {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts[i].Status = status
			return &s.accounts[i], nil
		}
	}
	return nil, nil
}

// stubProjectRepo records the last write and serves a fixed list.
type stubProjectRepo struct {
	rows []model.Project
	err  error

	lastCreate *model.CreateProjectParams
	lastUpdate *model.UpdateProjectParams
	lastDelete int64
	missing    bool
}

func (s *stubProjectRepo) FindAll(ctx context.Context) ([]model.Project, error) {
	return s.rows, s.err
}

func (s *stubProjectRepo) Create(ctx context.Context, params model.CreateProjectParams) (*model.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastCreate = &params
	return &model.Project{ID: 1}, nil
}

func (s *stubProjectRepo) Update(ctx context.Context, id int64, params model.UpdateProjectParams) (*model.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.missing {
		return nil, nil
	}
	s.lastUpdate = &params
	return &model.Project{ID: id}, nil
}

func (s *stubProjectRepo) Delete(ctx context.Context, id int64) error {
	s.lastDelete = id
	return s.err
}

type stubServiceRepo struct {
	rows []model.Service
	err  error
}

func (s *stubServiceRepo) FindAll(ctx context.Context) ([]model.Service, error) {
	return s.rows, s.err
}

func (s *stubServiceRepo) Create(ctx context.Context, params model.CreateServiceParams) (*model.Service, error) {
	return &model.Service{ID: 1}, s.err
}

func (s *stubServiceRepo) Update(ctx context.Context, id int64, params model.UpdateServiceParams) (*model.Service, error) {
	return &model.Service{ID: id}, s.err
}

func (s *stubServiceRepo) Delete(ctx context.Context, id int64) error {
	return s.err
}

type stubServiceTypeRepo struct {
	rows []model.ServiceType
	err  error
}

func (s *stubServiceTypeRepo) FindAll(ctx context.Context) ([]model.ServiceType, error) {
	return s.rows, s.err
}

func (s *stubServiceTypeRepo) Create(ctx context.Context, params model.CreateServiceTypeParams) (*model.ServiceType, error) {
	return &model.ServiceType{ID: 1}, s.err
}

func (s *stubServiceTypeRepo) Update(ctx context.Context, id int64, params model.UpdateServiceTypeParams) (*model.ServiceType, error) {
	return &model.ServiceType{ID: id}, s.err
}

func (s *stubServiceTypeRepo) Delete(ctx context.Context, id int64) error {
	return s.err
}

type stubMemberRepo struct {
	rows []model.Member
	err  error
}

func (s *stubMemberRepo) FindAll(ctx context.Context) ([]model.Member, error) {
	return s.rows, s.err
}

func (s *stubMemberRepo) Create(ctx context.Context, params model.CreateMemberParams) (*model.Member, error) {
	return &model.Member{ID: 1}, s.err
}

func (s *stubMemberRepo) Update(ctx context.Context, id int64, params model.UpdateMemberParams) (*model.Member, error) {
	return &model.Member{ID: id}, s.err
}

func (s *stubMemberRepo) Delete(ctx context.Context, id int64) error {
	return s.err
}
