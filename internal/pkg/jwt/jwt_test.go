package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := NewService("test-secret", 15*time.Minute, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "professional")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user_id = %s, want %s", claims.UserID, userID)
	}
	if claims.Role != "professional" {
		t.Fatalf("role = %s, want professional", claims.Role)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewService("test-secret", -time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "client")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := NewService("secret-a", 15*time.Minute, time.Hour).GenerateAccessToken(uuid.New(), "client")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := NewService("secret-b", 15*time.Minute, time.Hour).ValidateAccessToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateGarbage(t *testing.T) {
	svc := NewService("test-secret", 15*time.Minute, time.Hour)
	if _, err := svc.ValidateAccessToken("not.a.token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshTokenIsOpaqueAndUnique(t *testing.T) {
	svc := NewService("test-secret", 15*time.Minute, time.Hour)

	a, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}
	b, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	if len(a) != 64 {
		t.Fatalf("token length = %d, want 64 hex chars", len(a))
	}
	if a == b {
		t.Fatal("refresh tokens must be unique")
	}
	if HashRefreshToken(a) == HashRefreshToken(b) {
		t.Fatal("hashes of distinct tokens must differ")
	}
	if HashRefreshToken(a) != HashRefreshToken(a) {
		t.Fatal("hash must be deterministic")
	}
}
