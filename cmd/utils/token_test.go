package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, expiresAt, err := m.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if d := time.Until(expiresAt); d < 59*time.Minute || d > time.Hour {
		t.Fatalf("unexpected expiry in %s", d)
	}

	userID, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestTokenRejected(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	good, _, err := m.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	otherKey, _, err := NewTokenManager("other", time.Hour).Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: old},
		{name: "wrong key", token: otherKey},
		{name: "tampered", token: good[:len(good)-2] + "xx"},
		{name: "garbage", token: "not-a-token"},
		{name: "alg none", token: "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." + strings.Split(good, ".")[1] + "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Parse(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
