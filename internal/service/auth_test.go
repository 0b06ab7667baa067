package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"
	"github.com/outofband/tracker-bfa-go/internal/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestDevLogin_TokenRoundtrip(t *testing.T) {
	svc := service.NewAuthService("test-secret", time.Hour, true, "", zap.NewNop())

	resp, err := svc.DevLogin(context.Background(), &domain.DevLoginRequest{
		Email: "dev@example.com",
		Name:  "Dev User",
	})
	if err != nil {
		t.Fatalf("dev login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected an access token")
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("expected 3600s expiry, got %d", resp.ExpiresIn)
	}

	identity, err := svc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if identity.UserID != "dev-dev@example.com" {
		t.Errorf("unexpected user id %q", identity.UserID)
	}
	if identity.Email != "dev@example.com" || identity.DisplayName != "Dev User" {
		t.Errorf("claims did not round-trip: %+v", identity)
	}
}

func TestDevLogin_Disabled(t *testing.T) {
	svc := service.NewAuthService("test-secret", time.Hour, false, "", zap.NewNop())

	_, err := svc.DevLogin(context.Background(), &domain.DevLoginRequest{Email: "dev@example.com"})
	var forbidden *domain.ErrForbidden
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDevLogin_PasswordCheck(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	svc := service.NewAuthService("test-secret", time.Hour, true, string(hash), zap.NewNop())

	_, err = svc.DevLogin(context.Background(), &domain.DevLoginRequest{Email: "dev@example.com", Password: "wrong"})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected unauthorized on wrong password, got %v", err)
	}

	if _, err := svc.DevLogin(context.Background(), &domain.DevLoginRequest{Email: "dev@example.com", Password: "hunter2"}); err != nil {
		t.Fatalf("expected success with correct password, got %v", err)
	}
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc := service.NewAuthService("test-secret", time.Hour, true, "", zap.NewNop())

	_, err := svc.ValidateAccessToken("not.a.token")
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	issuer := service.NewAuthService("secret-a", time.Hour, true, "", zap.NewNop())
	verifier := service.NewAuthService("secret-b", time.Hour, true, "", zap.NewNop())

	resp, err := issuer.DevLogin(context.Background(), &domain.DevLoginRequest{Email: "dev@example.com"})
	if err != nil {
		t.Fatalf("dev login: %v", err)
	}

	var unauthorized *domain.ErrUnauthorized
	if _, err := verifier.ValidateAccessToken(resp.AccessToken); !errors.As(err, &unauthorized) {
		t.Fatalf("expected unauthorized across secrets, got %v", err)
	}
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := service.NewAuthService("test-secret", -time.Minute, true, "", zap.NewNop())

	resp, err := svc.DevLogin(context.Background(), &domain.DevLoginRequest{Email: "dev@example.com"})
	if err != nil {
		t.Fatalf("dev login: %v", err)
	}

	var unauthorized *domain.ErrUnauthorized
	if _, err := svc.ValidateAccessToken(resp.AccessToken); !errors.As(err, &unauthorized) {
		t.Fatalf("expected unauthorized for expired token, got %v", err)
	}
}
