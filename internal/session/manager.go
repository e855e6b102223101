// Package session tracks a visitor's authentication status and derives the
// confirmed-admin authorization flag from the admin_accounts table. It owns
// no storage: every State is re-derived in full from the identity service
// and one account lookup, so concurrent derivations cannot corrupt anything.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	apperrors "github.com/enbat/horizon-server-go/internal/errors"
	"github.com/enbat/horizon-server-go/internal/identity"
	"github.com/enbat/horizon-server-go/internal/model"
	"github.com/enbat/horizon-server-go/internal/repository"
)

// State is a visitor's session as seen by the rest of the application.
//
// Anonymous:            IsLoggedIn=false, IsConfirmed=false
// LoggedIn-Unconfirmed: IsLoggedIn=true,  IsConfirmed=false
// LoggedIn-Confirmed:   IsLoggedIn=true,  IsConfirmed=true
type State struct {
	Email       *string `json:"email"`
	IsLoggedIn  bool    `json:"isLoggedIn"`
	IsConfirmed bool    `json:"isConfirmed"`
}

// IdentityService is the slice of the identity client the manager uses.
type IdentityService interface {
	SignUp(ctx context.Context, email, password string) (*identity.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context, token string) error
	GetUser(ctx context.Context, token string) (*identity.User, error)
}

type Manager struct {
	identity        IdentityService
	accounts        repository.AccountRepository
	superAdminEmail string

	mu   sync.RWMutex
	subs []func(State)
}

func NewManager(identitySvc IdentityService, accounts repository.AccountRepository, superAdminEmail string) *Manager {
	return &Manager{
		identity:        identitySvc,
		accounts:        accounts,
		superAdminEmail: superAdminEmail,
	}
}

// Subscribe registers a callback invoked after every session transition
// (sign-in, sign-out). Register subscribers once at process start.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) notify(state State) {
	m.mu.RLock()
	subs := make([]func(State), len(m.subs))
	copy(subs, m.subs)
	m.mu.RUnlock()

	for _, fn := range subs {
		fn(state)
	}
}

// IsSuperAdmin reports whether email is the configured super-admin address.
// The comparison is case-insensitive; an empty configuration matches nothing.
func (m *Manager) IsSuperAdmin(email string) bool {
	return m.superAdminEmail != "" && strings.EqualFold(email, m.superAdminEmail)
}

// Register creates credentials at the identity service, then inserts the
// matching admin_accounts row: confirmed for the super-admin address,
// pending for everyone else.
//
// The two steps are not transactional. If the row insert fails after the
// identity user was created, the insert error is returned and the identity
// user is left standing; an absent row reads back as unconfirmed, so the
// account stays gated until someone inserts or confirms it.
func (m *Manager) Register(ctx context.Context, email, password string) error {
	user, err := m.identity.SignUp(ctx, email, password)
	if err != nil {
		return err
	}

	status := model.AccountStatusPending
	if m.IsSuperAdmin(email) {
		status = model.AccountStatusConfirmed
	}

	if _, err := m.accounts.Create(ctx, model.CreateAdminAccountParams{
		Email:  user.Email,
		UserID: user.ID,
		Status: status,
	}); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("admin account row insert failed after sign-up")
		return apperrors.RemoteQuery("insert admin account", err)
	}

	log.Info().Str("email", user.Email).Str("status", string(status)).Msg("admin account registered")
	return nil
}

// SignIn exchanges credentials for an access token and notifies subscribers
// with the freshly derived state.
func (m *Manager) SignIn(ctx context.Context, email, password string) (string, error) {
	token, err := m.identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		return "", err
	}

	m.notify(m.Load(ctx, token))
	return token, nil
}

// SignOut revokes the token at the identity service. The resulting state is
// always Anonymous, even if revocation fails remotely.
func (m *Manager) SignOut(ctx context.Context, token string) error {
	err := m.identity.SignOut(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("identity sign-out failed")
	}

	m.notify(State{})
	return err
}

// Load derives the session state for a token. No token, or a token the
// identity service rejects, is Anonymous. A logged-in visitor is confirmed
// only when the admin_accounts row matching their email (exact equality)
// has status confirmed; an absent row or a failed lookup reads as
// unconfirmed and is never retried.
func (m *Manager) Load(ctx context.Context, token string) State {
	if token == "" {
		return State{}
	}

	user, err := m.identity.GetUser(ctx, token)
	if err != nil || user == nil {
		return State{}
	}

	state := State{
		Email:      &user.Email,
		IsLoggedIn: true,
	}

	account, err := m.accounts.FindByEmail(ctx, user.Email)
	if err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("admin account lookup failed, treating as unconfirmed")
		return state
	}
	if account != nil && account.Status == model.AccountStatusConfirmed {
		state.IsConfirmed = true
	}

	return state
}
