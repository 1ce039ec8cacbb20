package jwt_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/omspos/oms-api/internal/pkg/jwt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Minute, time.Hour)

	userID := uuid.New()
	outletID := uuid.New()
	token, err := svc.GenerateAccessToken(userID, "Cashier", nil, &outletID)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id mismatch: %s", claims.UserID)
	}
	if claims.Role != "Cashier" {
		t.Fatalf("role mismatch: %s", claims.Role)
	}
	if claims.OperatorID != nil {
		t.Fatalf("operator should be absent, got %v", claims.OperatorID)
	}
	if claims.OutletID == nil || *claims.OutletID != outletID {
		t.Fatalf("outlet mismatch: %v", claims.OutletID)
	}
}

func TestExpiredAccessToken(t *testing.T) {
	svc := jwt.NewService("test-secret", -time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "Admin", nil, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	_, err = svc.ValidateAccessToken(token)
	if !errors.Is(err, jwt.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenFromDifferentSecret(t *testing.T) {
	issuer := jwt.NewService("secret-a", time.Minute, time.Hour)
	verifier := jwt.NewService("secret-b", time.Minute, time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New(), "Admin", nil, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := verifier.ValidateAccessToken(token); !errors.Is(err, jwt.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Minute, time.Hour)

	a, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	b, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if a == b {
		t.Fatal("refresh tokens must be unique")
	}
	if jwt.HashRefreshToken(a) == jwt.HashRefreshToken(b) {
		t.Fatal("distinct tokens must hash differently")
	}
	if jwt.HashRefreshToken(a) != jwt.HashRefreshToken(a) {
		t.Fatal("hashing must be deterministic")
	}
}
