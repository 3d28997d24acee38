package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/padkit/helipad/internal/models"
)

// fake authenticator counting slow-path calls
type fakeAuth struct {
	calls int
}

func (f *fakeAuth) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	f.calls++
	if password != "secret" {
		return nil, errors.New("invalid credentials")
	}
	return &models.User{Email: email}, nil
}

// failing repo simulates an unreachable store
type failingRepo struct{}

func (failingRepo) Create(context.Context, *Session) error { return errors.New("down") }
func (failingRepo) GetByKey(context.Context, string) (*Session, error) {
	return nil, errors.New("down")
}
func (failingRepo) DeleteByKey(context.Context, string) error { return errors.New("down") }

func TestAuthenticateCachesSuccess(t *testing.T) {
	auth := &fakeAuth{}
	svc, err := NewService(NewMemoryRepository(), auth, time.Hour)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		u, err := svc.Authenticate(ctx, "me@example.com", "secret")
		if err != nil {
			t.Fatalf("authenticate: %v", err)
		}
		if u.Email != "me@example.com" {
			t.Fatalf("unexpected email: %s", u.Email)
		}
	}
	if auth.calls != 1 {
		t.Fatalf("expected 1 slow-path call, got %d", auth.calls)
	}

	// a different password is never served from the cache
	if _, err := svc.Authenticate(ctx, "me@example.com", "wrong"); err == nil {
		t.Fatal("expected wrong password to fail")
	}
	if auth.calls != 2 {
		t.Fatalf("expected 2 slow-path calls, got %d", auth.calls)
	}

	if err := svc.Forget(ctx, "me@example.com", "secret"); err != nil {
		t.Fatalf("forget: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "me@example.com", "secret"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if auth.calls != 3 {
		t.Fatalf("expected forget to force the slow path, got %d calls", auth.calls)
	}
}

func TestAuthenticateExpiredEntry(t *testing.T) {
	auth := &fakeAuth{}
	svc, err := NewService(NewMemoryRepository(), auth, -time.Second)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()
	_, _ = svc.Authenticate(ctx, "me@example.com", "secret")
	_, _ = svc.Authenticate(ctx, "me@example.com", "secret")
	if auth.calls != 2 {
		t.Fatalf("expected expired entries to be ignored, got %d calls", auth.calls)
	}
}

func TestAuthenticateStoreDown(t *testing.T) {
	auth := &fakeAuth{}
	svc, err := NewService(failingRepo{}, auth, time.Hour)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "me@example.com", "secret"); err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
}
