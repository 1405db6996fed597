package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/trip-service/internal/config"
	"github.com/spec-kit/trip-service/internal/domain"
	apperrors "github.com/spec-kit/trip-service/pkg/util"
)

// mockUserRepository is an in-memory credential store.
type mockUserRepository struct {
	users map[string]*domain.User
	roles map[string]bool
	links map[string][]string
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
		roles: make(map[string]bool),
		links: make(map[string][]string),
	}
}

func (m *mockUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	snapshot := *user
	snapshot.Roles = append([]string{}, m.links[username]...)
	return &snapshot, nil
}

func (m *mockUserRepository) Create(_ context.Context, user *domain.User) error {
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) CreateRole(_ context.Context, name string) error {
	m.roles[strings.ToUpper(name)] = true
	return nil
}

func (m *mockUserRepository) AssignRole(_ context.Context, username, roleName string) error {
	roleName = strings.ToUpper(roleName)
	if _, ok := m.users[username]; !ok {
		return pgx.ErrNoRows
	}
	if !m.roles[roleName] {
		return pgx.ErrNoRows
	}
	m.links[username] = append(m.links[username], roleName)
	return nil
}

func newTestAuthService(repo *mockUserRepository) *AuthService {
	return NewAuthService(config.AuthConfig{
		Issuer:          "trip-service-test",
		SecretKey:       "test-secret",
		TokenTTLMinutes: 30,
		BcryptCost:      4,
	}, repo, nil)
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newMockUserRepository()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	token, user, err := svc.Register(ctx, "alice", "p@ss1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("register returned empty token")
	}
	if len(user.Roles) != 1 || user.Roles[0] != "USER" {
		t.Fatalf("roles after register = %v, want [USER]", user.Roles)
	}

	claims, err := svc.TokenManager().Verify(token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("token subject = %q, want alice", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "USER" {
		t.Errorf("token roles = %v, want [USER]", claims.Roles)
	}

	loginToken, loginUser, err := svc.Login(ctx, "alice", "p@ss1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loginToken == "" || loginUser.Username != "alice" {
		t.Fatalf("login result token=%q user=%v", loginToken, loginUser)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	repo := newMockUserRepository()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "alice", "p@ss1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, wrongPassword := svc.Login(ctx, "alice", "wrong")
	_, _, unknownUser := svc.Login(ctx, "ghost", "anything")

	if wrongPassword == nil || unknownUser == nil {
		t.Fatal("both logins should fail")
	}

	var wrongErr, unknownErr *apperrors.DomainError
	if !errors.As(wrongPassword, &wrongErr) || !errors.As(unknownUser, &unknownErr) {
		t.Fatal("errors should be DomainError")
	}
	if wrongErr.Message != unknownErr.Message {
		t.Fatalf("messages differ: %q vs %q", wrongErr.Message, unknownErr.Message)
	}
	if wrongErr.HTTPStatus != unknownErr.HTTPStatus {
		t.Fatalf("statuses differ: %d vs %d", wrongErr.HTTPStatus, unknownErr.HTTPStatus)
	}
}

func TestRegisterConflict(t *testing.T) {
	repo := newMockUserRepository()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "alice", "p@ss1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Register(ctx, "alice", "other")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "CONFLICT" {
		t.Fatalf("duplicate register = %v, want CONFLICT", err)
	}
}

func TestPopulateSeedsRolesAndUsers(t *testing.T) {
	repo := newMockUserRepository()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	if err := svc.Populate(ctx); err != nil {
		t.Fatalf("populate: %v", err)
	}

	admin, err := repo.GetByUsername(ctx, "Admin")
	if err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if len(admin.Roles) != 1 || admin.Roles[0] != "ADMIN" {
		t.Fatalf("admin roles = %v, want [ADMIN]", admin.Roles)
	}

	// Populate is idempotent.
	if err := svc.Populate(ctx); err != nil {
		t.Fatalf("second populate: %v", err)
	}
}
