package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/buxzona/buxzona-backend/internal/domain"
)

func TestLoginWithCookie_ReturnsIdentity(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{identity: &domain.UserIdentity{
		ID:        12345,
		Name:      "builderman",
		AvatarURL: "https://cdn.example/avatar.png",
	}})

	rec := postJSON(h.LoginWithCookie, `{"cookie":"session-token"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatarUrl"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.ID != 12345 || resp.Name != "builderman" || resp.AvatarURL == "" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestLoginWithCookie_InvalidCredential(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{err: domain.ErrInvalidCredential})

	rec := postJSON(h.LoginWithCookie, `{"cookie":"expired"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLoginWithCookie_MissingCookie(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{})

	for _, body := range []string{`{}`, `{"cookie":""}`, `{`} {
		if rec := postJSON(h.LoginWithCookie, body); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for %q, got %d", body, rec.Code)
		}
	}
}
