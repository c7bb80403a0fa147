package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken("secret", 42, "CUSTOMER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["sub"].(float64) != 42 {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}
	if claims["role"] != "CUSTOMER" {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
	if at.Exp.Before(time.Now().UTC().Add(14 * time.Minute)) {
		t.Fatalf("expiry too early: %v", at.Exp)
	}
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	at, err := NewAccessToken("secret", 1, "ADMIN", 15)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	if _, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	}); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestRefreshTokensAreUniqueAndHashable(t *testing.T) {
	a, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}
	b, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}
	if a.Raw == b.Raw {
		t.Fatal("two refresh tokens collided")
	}
	if len(a.Raw) != 96 {
		t.Fatalf("unexpected raw token length %d", len(a.Raw))
	}
	if HashRefreshRaw(a.Raw) == HashRefreshRaw(b.Raw) {
		t.Fatal("hashes of distinct tokens collided")
	}
	if len(HashRefreshRaw(a.Raw)) != 64 {
		t.Fatalf("unexpected hash length %d", len(HashRefreshRaw(a.Raw)))
	}
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordFallsBackOnBadCost(t *testing.T) {
	for _, cost := range []int{-1, 0, 99} {
		hash, err := HashPassword("s3cret", cost)
		if err != nil {
			t.Fatalf("cost %d: expected fallback to default cost, got %v", cost, err)
		}
		if !VerifyPassword(hash, "s3cret") {
			t.Fatalf("cost %d: hash does not verify", cost)
		}
	}
}
