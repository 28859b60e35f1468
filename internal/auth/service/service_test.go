package service

import (
	"context"
	"testing"
	"time"

	"leaddesk_backend/internal/auth/password"
	usersrepo "leaddesk_backend/internal/users/repository"
	"leaddesk_backend/platform/apperr"
	"leaddesk_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fakeStore struct {
	users map[uuid.UUID]usersrepo.User
}

func (f *fakeStore) GetByUsername(ctx context.Context, username string) (usersrepo.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return usersrepo.User{}, usersrepo.ErrNotFound
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (usersrepo.User, error) {
	u, ok := f.users[id]
	if !ok {
		return usersrepo.User{}, usersrepo.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) Update(ctx context.Context, id uuid.UUID, params usersrepo.UpdateUserParams) (usersrepo.User, error) {
	u := f.users[id]
	if params.PasswordHash != nil {
		u.PasswordHash = *params.PasswordHash
	}
	f.users[id] = u
	return u, nil
}

type testConfig struct{}

func (testConfig) GetJWTAccessSecret() string        { return "access-secret" }
func (testConfig) GetJWTRefreshSecret() string       { return "refresh-secret" }
func (testConfig) GetAccessTokenTTL() time.Duration  { return 15 * time.Minute }
func (testConfig) GetRefreshTokenTTL() time.Duration { return 7 * 24 * time.Hour }

func newTestService(t *testing.T, active bool) (*Service, usersrepo.User) {
	t.Helper()

	hash, err := password.Hash("correct-pass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	user := usersrepo.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: hash,
		Role:         "user",
		IsActive:     active,
	}
	store := &fakeStore{users: map[uuid.UUID]usersrepo.User{user.ID: user}}
	return New(store, testConfig{}, logger.New("development")), user
}

func TestSignIn(t *testing.T) {
	svc, user := newTestService(t, true)

	resp, err := svc.SignIn(context.Background(), "alice", "correct-pass")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("SignIn() returned empty tokens")
	}
	if resp.User.ID != user.ID || resp.User.Role != "user" {
		t.Fatalf("SignIn() user = %+v", resp.User)
	}

	parsed, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["type"] != "access" || claims["sub"] != user.ID.String() {
		t.Fatalf("access claims = %v", claims)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t, true)

	if _, err := svc.SignIn(context.Background(), "alice", "wrong"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("wrong password error = %v, want unauthorized", err)
	}
	if _, err := svc.SignIn(context.Background(), "nobody", "correct-pass"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("unknown user error = %v, want unauthorized", err)
	}
}

func TestSignInRejectsDeactivatedAccount(t *testing.T) {
	svc, _ := newTestService(t, false)

	if _, err := svc.SignIn(context.Background(), "alice", "correct-pass"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("deactivated account error = %v, want unauthorized", err)
	}
}

func TestRefreshRoundTrip(t *testing.T) {
	svc, _ := newTestService(t, true)

	first, err := svc.SignIn(context.Background(), "alice", "correct-pass")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if second.AccessToken == "" {
		t.Fatalf("Refresh() returned empty access token")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService(t, true)

	resp, err := svc.SignIn(context.Background(), "alice", "correct-pass")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	// An access token must not work as a refresh token.
	if _, err := svc.Refresh(context.Background(), resp.AccessToken); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("Refresh(access token) error = %v, want unauthorized", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, user := newTestService(t, true)

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "new-password-1"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("wrong current password error = %v, want unauthorized", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "correct-pass", "new-password-1"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := svc.SignIn(context.Background(), "alice", "new-password-1"); err != nil {
		t.Fatalf("SignIn() with new password error = %v", err)
	}
	if _, err := svc.SignIn(context.Background(), "alice", "correct-pass"); err == nil {
		t.Fatalf("old password still accepted")
	}
}
