package auth

import (
	"testing"
	"time"
)

func TestJWTManager_GenerateAndParse(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	token, err := manager.GenerateToken("mentor-1", "mentor@example.com", RoleMentor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	principal := claims.Principal()
	if principal.ID != "mentor-1" || principal.Email != "mentor@example.com" || principal.Role != RoleMentor {
		t.Fatalf("unexpected principal: %+v", principal)
	}

	if _, err := manager.ParseToken(token + "tampered"); err == nil {
		t.Fatalf("expected parse error for tampered token")
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret", time.Hour).GenerateToken("user-1", "user@example.com", RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewJWTManager("other", time.Hour).ParseToken(token); err == nil {
		t.Fatalf("expected error when verifying with a different secret")
	}
}

func TestJWTManager_Expired(t *testing.T) {
	manager := NewJWTManager("secret", time.Nanosecond)
	token, err := manager.GenerateToken("user-1", "user@example.com", RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := manager.ParseToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestJWTManager_EmptySecret(t *testing.T) {
	manager := NewJWTManager("", time.Hour)
	if _, err := manager.GenerateToken("user", "user@example.com", RoleUser); err == nil {
		t.Fatalf("expected error when secret is empty")
	}
	if _, err := NewJWTManager("secret", time.Hour).GenerateToken("", "user@example.com", RoleUser); err == nil {
		t.Fatalf("expected error when subject is empty")
	}
}
