package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)

	tok, exp, err := tm.Issue("alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", exp)
	}

	identity, err := tm.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if identity.Subject != "alice" {
		t.Fatalf("subject mismatch: got %q want %q", identity.Subject, "alice")
	}
	if identity.Role != RoleUser {
		t.Fatalf("role mismatch: got %q want %q", identity.Role, RoleUser)
	}
}

func TestIssue_EmptySubject(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	if _, _, err := tm.Issue(""); !errors.Is(err, ErrEmptySubject) {
		t.Fatalf("expected ErrEmptySubject, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", -1*time.Second)

	tok, _, err := tm.Issue("alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = tm.Verify(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("right-secret", time.Hour)
	verifier := NewTokenManager("wrong-secret", time.Hour)

	tok, _, err := issuer.Issue("bob")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifier.Verify(tok)
	if !errors.Is(err, ErrTokenBadSignature) {
		t.Fatalf("expected ErrTokenBadSignature, got %v", err)
	}
}

func TestVerify_MissingExpiryRejected(t *testing.T) {
	t.Parallel()

	secret := "secret"
	tm := NewTokenManager(secret, time.Hour)

	// correctly signed, but without an exp claim
	eternal := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Authorities: []string{RoleUser},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "alice",
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})
	raw, err := eternal.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	if _, err := tm.Verify(raw); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for missing exp, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", time.Hour)
	for _, raw := range []string{"", "garbage", "not.a.jwt"} {
		if _, err := tm.Verify(raw); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("input %q: expected ErrTokenMalformed, got %v", raw, err)
		}
	}
}
