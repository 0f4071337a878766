package services

import (
	"context"
	"testing"
	"time"

	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.Username] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error           { return nil }

func activeUser() *domain.User {
	return &domain.User{
		ID:           1,
		Username:     "admin",
		PasswordHash: HashPassword("s3cret"),
		Role:         domain.UserRoleAdmin,
		Status:       domain.UserStatusActive,
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(activeUser()), time.Hour, logger.NewNop())

	result, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User == nil || result.User.Username != "admin" {
		t.Fatalf("unexpected user %+v", result.User)
	}

	user, err := svc.Validate(result.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("expected user 1, got %d", user.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(activeUser()), time.Hour, logger.NewNop())
	ctx := context.Background()

	if _, err := svc.Login(ctx, "admin", "wrong"); err != ErrAuthInvalidCredentials {
		t.Errorf("bad password: expected ErrAuthInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "s3cret"); err != ErrAuthInvalidCredentials {
		t.Errorf("unknown user: expected ErrAuthInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	suspended := activeUser()
	suspended.Status = domain.UserStatusSuspended
	svc := NewAuthService(newFakeUserRepo(suspended), time.Hour, logger.NewNop())

	if _, err := svc.Login(context.Background(), "admin", "s3cret"); err != ErrAuthUserSuspended {
		t.Fatalf("expected ErrAuthUserSuspended, got %v", err)
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(activeUser()), time.Hour, logger.NewNop())

	result, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc.Logout(result.Token)
	if _, err := svc.Validate(result.Token); err != ErrAuthInvalidToken {
		t.Fatalf("expected ErrAuthInvalidToken after logout, got %v", err)
	}
}

func TestValidateExpiredSession(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(activeUser()), 10*time.Millisecond, logger.NewNop())

	result, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	time.Sleep(25 * time.Millisecond)
	if _, err := svc.Validate(result.Token); err != ErrAuthInvalidToken {
		t.Fatalf("expected ErrAuthInvalidToken for expired session, got %v", err)
	}
}

func TestValidateUnknownToken(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(activeUser()), time.Hour, logger.NewNop())
	if _, err := svc.Validate("bogus"); err != ErrAuthInvalidToken {
		t.Fatalf("expected ErrAuthInvalidToken, got %v", err)
	}
}
