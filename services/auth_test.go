package services

import (
	"errors"
	"testing"
	"time"

	"fitness-club-backend/models"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(nil, nil, "test-secret", time.Hour)
	user := &models.User{ID: "u1", Role: models.RoleCoach}

	token, err := svc.issueToken(user)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	userID, role, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if userID != "u1" || role != string(models.RoleCoach) {
		t.Errorf("got (%q, %q), want (u1, coach)", userID, role)
	}
}

func TestVerifyToken_RejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService(nil, nil, "secret-a", time.Hour)
	verifier := NewAuthService(nil, nil, "secret-b", time.Hour)

	token, err := issuer.issueToken(&models.User{ID: "u1", Role: models.RoleMember})
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}
	if _, _, err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyToken_RejectsExpired(t *testing.T) {
	svc := NewAuthService(nil, nil, "test-secret", -time.Minute)

	token, err := svc.issueToken(&models.User{ID: "u1", Role: models.RoleMember})
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}
	if _, _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyToken_RejectsGarbage(t *testing.T) {
	svc := NewAuthService(nil, nil, "test-secret", time.Hour)
	if _, _, err := svc.VerifyToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
