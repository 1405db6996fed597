package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/trip-service/internal/auth"
	"github.com/spec-kit/trip-service/internal/config"
	"github.com/spec-kit/trip-service/internal/domain"
	"github.com/spec-kit/trip-service/internal/events"
	"github.com/spec-kit/trip-service/internal/repository"
	apperrors "github.com/spec-kit/trip-service/pkg/util"
)

// invalidCredentials is returned for both unknown users and wrong
// passwords so a caller cannot probe which usernames exist.
const invalidCredentials = "invalid username or password"

// AuthService coordinates login and registration. It is the only
// component that calls the credential store's mutating operations.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users: users,
		tokens: auth.NewTokenManager(auth.TokenConfig{
			Issuer: cfg.Issuer,
			TTL:    cfg.TokenTTL(),
			Secret: cfg.SecretKey,
		}),
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// Login verifies credentials and issues a token carrying a snapshot of
// the user's current roles.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, apperrors.NewUnauthorized(invalidCredentials)
		}
		return "", nil, apperrors.NewInternalError(err)
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return "", nil, apperrors.NewUnauthorized(invalidCredentials)
	}

	token, _, err := s.tokens.Issue(user.Username, user.Roles)
	if err != nil {
		return "", nil, apperrors.NewInternalError(err)
	}
	return token, user, nil
}

// Register creates a credential record, grants the default USER role
// (creating it on demand) and issues a token so the caller is
// authenticated immediately.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, *domain.User, error) {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return "", nil, apperrors.NewConflict("user already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return "", nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, apperrors.NewInternalError(err)
	}

	if err := s.users.CreateRole(ctx, domain.DefaultRoleName); err != nil {
		return "", nil, apperrors.NewInternalError(err)
	}
	if err := s.users.AssignRole(ctx, username, domain.DefaultRoleName); err != nil {
		// Missing user or role here is a server-side integrity bug, not
		// caller input.
		return "", nil, apperrors.NewInternalError(err)
	}

	created, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, apperrors.NewInternalError(err)
	}

	token, _, err := s.tokens.Issue(created.Username, created.Roles)
	if err != nil {
		return "", nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventUserRegistered, created.Username, events.UserRegisteredPayload{
		Username: created.Username,
		Roles:    created.Roles,
	})
	return token, created, nil
}

// Populate seeds default roles and demo users. Development only.
func (s *AuthService) Populate(ctx context.Context) error {
	for _, role := range []string{"USER", "ADMIN"} {
		if err := s.users.CreateRole(ctx, role); err != nil {
			return apperrors.NewInternalError(err)
		}
	}

	seeds := []struct {
		username string
		password string
		role     string
	}{
		{"Gruppe18", "pass12345", "USER"},
		{"Admin", "pass12345", "ADMIN"},
	}
	for _, seed := range seeds {
		if _, err := s.users.GetByUsername(ctx, seed.username); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewInternalError(err)
		}

		hash, err := auth.HashPassword(seed.password, s.bcryptCost)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if err := s.users.Create(ctx, &domain.User{Username: seed.username, PasswordHash: hash}); err != nil {
			return apperrors.NewInternalError(err)
		}
		if err := s.users.AssignRole(ctx, seed.username, seed.role); err != nil {
			return apperrors.NewInternalError(err)
		}
	}
	return nil
}

// TokenManager exposes the codec for middleware construction.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.New(eventType, actor, payload))
}
