package security_test

import (
	"testing"
	"time"

	"github.com/efuayankey/NextToIntern/internal/security"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := security.MakeAccess("secret", "u1", "jdoe@lehigh.edu", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	c, err := security.ParseAccess("secret", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UID != "u1" || c.Email != "jdoe@lehigh.edu" || c.Subject != "u1" {
		t.Fatalf("claims mismatch: %#v", c)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tok, err := security.MakeAccess("secret", "u1", "jdoe@lehigh.edu", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := security.ParseAccess("other", tok); err == nil {
		t.Fatal("wrong secret must fail")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	tok, err := security.MakeAccess("secret", "u1", "jdoe@lehigh.edu", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := security.ParseAccess("secret", tok); err == nil {
		t.Fatal("expired token must fail")
	}
}

func TestRefreshTokensAreUnique(t *testing.T) {
	a, err := security.NewRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := security.NewRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	if a == b || len(a) == 0 {
		t.Fatal("refresh tokens must be random")
	}
}
