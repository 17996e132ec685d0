package auth

import (
	"testing"
	"time"

	"selecao-backend/internal/config"
)

func testService() *Service {
	return NewService(&config.JWTConfig{
		Secret:     "test-secret",
		Expiration: 2 * time.Hour,
	})
}

func TestHashPIN(t *testing.T) {
	svc := testService()

	pin := "1234"
	hash, err := svc.HashPIN(pin)
	if err != nil {
		t.Fatalf("Failed to hash PIN: %v", err)
	}

	if hash == "" {
		t.Error("Hash should not be empty")
	}

	if hash == pin {
		t.Error("Hash should not equal the original PIN")
	}
}

func TestVerifyPIN(t *testing.T) {
	svc := testService()

	pin := "1234"
	hash, err := svc.HashPIN(pin)
	if err != nil {
		t.Fatalf("Failed to hash PIN: %v", err)
	}

	// Test correct PIN
	if err := svc.VerifyPIN(hash, pin); err != nil {
		t.Errorf("Should verify correct PIN, got error: %v", err)
	}

	// Test incorrect PIN
	if err := svc.VerifyPIN(hash, "4321"); err == nil {
		t.Error("Should not verify incorrect PIN")
	}
}

func TestGenerateToken(t *testing.T) {
	svc := testService()

	token, expiresAt, err := svc.GenerateToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if token == "" {
		t.Error("Token should not be empty")
	}

	if !expiresAt.After(time.Now()) {
		t.Error("Expiry should be in the future")
	}
}

func TestValidateToken(t *testing.T) {
	svc := testService()

	token, _, err := svc.GenerateToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims.Role != "admin" {
		t.Errorf("Expected role admin, got %s", claims.Role)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewService(&config.JWTConfig{
		Secret:     "test-secret",
		Expiration: -1 * time.Hour, // Already expired
	})

	token, _, err := svc.GenerateToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("Should not validate expired token")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := testService()

	token, _, err := svc.GenerateToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	other := NewService(&config.JWTConfig{
		Secret:     "other-secret",
		Expiration: 2 * time.Hour,
	})

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("Should not validate token signed with a different secret")
	}
}
