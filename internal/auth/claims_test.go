package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func TestIssueAndParseToken(t *testing.T) {
	raw, err := IssueToken(testSecret, "grafana", "999", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	claims, err := ParseToken(testSecret, raw)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.Subject != "grafana" || claims.GuildID != "999" {
		t.Errorf("Unexpected claims %+v", claims)
	}
	if !claims.CanRead("999") || claims.CanRead("1000") {
		t.Errorf("Guild-scoped token must only read its guild")
	}
}

func TestParseTokenRejects(t *testing.T) {
	good, _ := IssueToken(testSecret, "ops", "", time.Hour)
	expired, _ := IssueToken(testSecret, "ops", "", -time.Minute)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, OpsClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else", Subject: "ops"},
	})
	foreignRaw, _ := foreign.SignedString(testSecret)

	tests := []struct {
		name   string
		secret []byte
		raw    string
	}{
		{"wrong secret", []byte("other"), good},
		{"expired", testSecret, expired},
		{"wrong issuer", testSecret, foreignRaw},
		{"garbage", testSecret, "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.secret, tt.raw); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestUnscopedTokenReadsAnyGuild(t *testing.T) {
	c := &OpsClaims{}
	if !c.CanRead("anything") {
		t.Errorf("Expected unscoped token to read any guild")
	}
}

func TestMissingSecret(t *testing.T) {
	if _, err := IssueToken(nil, "ops", "", 0); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("Expected ErrMissingSecret, got %v", err)
	}
	if _, err := ParseToken(nil, "x"); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("Expected ErrMissingSecret, got %v", err)
	}
}

func TestRequestContextRoundTrip(t *testing.T) {
	if GetUserClaims(context.Background()) != nil {
		t.Fatalf("Expected nil claims on empty context")
	}
	c := &OpsClaims{GuildID: "1"}
	if got := GetUserClaims(SetUserClaims(context.Background(), c)); got != c {
		t.Errorf("Expected stored claims back")
	}
}
