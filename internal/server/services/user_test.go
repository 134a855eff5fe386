package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/natekim416/tuckserver/internal/common"
	"github.com/natekim416/tuckserver/internal/server/auth"
	"github.com/natekim416/tuckserver/internal/server/config"
	"github.com/natekim416/tuckserver/internal/server/repositories/memory"
)

const testSecret = "service-test-secret"

func newUserService() *UserService {
	m := memory.NewManager()
	return NewUserService(nil, m, &config.Config{SecretKey: testSecret})
}

func TestRegister_Success(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	user, token, err := s.Register(ctx, "  Alice@Example.COM ", "password123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.ID == "" || user.PasswordHash == "password123" {
		t.Fatalf("unexpected user: %+v", user)
	}

	subject, err := auth.GetUserIDFromToken(token, []byte(testSecret), time.Now())
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("token subject %q, want %q", subject, user.ID)
	}
}

func TestRegister_Validation(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"no at sign", "not-an-email", "password123"},
		{"empty email", "", "password123"},
		{"short password", "bob@example.com", "short"},
		{"empty password", "bob@example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Register(ctx, tt.email, tt.password)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("want common.ErrorValidation, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmailNormalized(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	if _, _, err := s.Register(ctx, "carol@example.com", "password123"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// Same address with different casing is the same account.
	_, _, err := s.Register(ctx, "CAROL@example.com", "password123")
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("want common.ErrorConflict, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	s := newUserService()
	ctx := context.Background()

	registered, _, err := s.Register(ctx, "dave@example.com", "password123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	user, token, err := s.Login(ctx, "Dave@Example.com", "password123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != registered.ID || token == "" {
		t.Fatalf("unexpected session: user=%+v token=%q", user, token)
	}

	// Wrong password and unknown email answer identically.
	if _, _, err := s.Login(ctx, "dave@example.com", "wrong-password"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
	if _, _, err := s.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	s := newUserService()

	_, err := s.FindByID(context.Background(), "no-such-user")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Alice@Example.COM", "alice@example.com"},
		{"  bob@example.com  ", "bob@example.com"},
		{"plain@example.com", "plain@example.com"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
