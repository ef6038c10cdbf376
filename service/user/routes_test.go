package user

import (
	"net/http"
	"testing"

	"github.com/KAsare1/blog-server/cmd/utils"
)

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		password string
		confirm  string
		ok       bool
	}{
		{name: "valid", nickname: "abc123", password: "pw12", confirm: "pw12", ok: true},
		{name: "prefix match is enough", nickname: "abc-def", password: "pw12", confirm: "pw12", ok: true},
		{name: "too short", nickname: "ab", password: "pw12", confirm: "pw12"},
		{name: "leading symbol", nickname: "_abc", password: "pw12", confirm: "pw12"},
		{name: "short password", nickname: "abc123", password: "pw1", confirm: "pw1"},
		{name: "password contains nickname", nickname: "abc", password: "xabcx", confirm: "xabcx"},
		{name: "confirm mismatch", nickname: "abc123", password: "pw12", confirm: "pw13"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSignup(tt.nickname, tt.password, tt.confirm)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			apiErr, ok := err.(*utils.APIError)
			if !ok || apiErr.Status != http.StatusPreconditionFailed {
				t.Fatalf("expected 412, got %v", err)
			}
		})
	}
}
