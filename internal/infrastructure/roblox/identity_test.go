package roblox

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buxzona/buxzona-backend/internal/config"
	"github.com/buxzona/buxzona-backend/internal/domain"
)

func newIdentityClient(usersURL, thumbsURL string) *Client {
	return NewClient(config.Roblox{
		UsersAPIURL:      usersURL,
		ThumbnailsAPIURL: thumbsURL,
		GamepassSelector: ".text-robux-lg",
	})
}

func TestResolveIdentity_Success(t *testing.T) {
	users := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(".ROBLOSECURITY")
		if err != nil || cookie.Value != "session-token" {
			t.Error("expected session cookie on users request")
		}
		fmt.Fprint(w, `{"id":12345,"name":"builderman"}`)
	}))
	defer users.Close()

	thumbs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("userIds") != "12345" {
			t.Errorf("expected userIds=12345, got %s", r.URL.Query().Get("userIds"))
		}
		fmt.Fprint(w, `{"data":[{"imageUrl":"https://cdn.example/avatar.png"}]}`)
	}))
	defer thumbs.Close()

	c := newIdentityClient(users.URL, thumbs.URL)
	identity, err := c.ResolveIdentity(context.Background(), "session-token")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if identity.ID != 12345 || identity.Name != "builderman" {
		t.Errorf("unexpected identity %+v", identity)
	}
	if identity.AvatarURL != "https://cdn.example/avatar.png" {
		t.Errorf("unexpected avatar url %s", identity.AvatarURL)
	}
}

func TestResolveIdentity_Unauthorized(t *testing.T) {
	users := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer users.Close()

	c := newIdentityClient(users.URL, "http://unused.invalid")
	_, err := c.ResolveIdentity(context.Background(), "expired")
	if !errors.Is(err, domain.ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestResolveIdentity_MissingUserID(t *testing.T) {
	users := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"ghost"}`)
	}))
	defer users.Close()

	c := newIdentityClient(users.URL, "http://unused.invalid")
	_, err := c.ResolveIdentity(context.Background(), "whatever")
	if !errors.Is(err, domain.ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestResolveIdentity_ThumbnailFailureIsNotFatal(t *testing.T) {
	users := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":7,"name":"noface"}`)
	}))
	defer users.Close()

	thumbs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer thumbs.Close()

	c := newIdentityClient(users.URL, thumbs.URL)
	identity, err := c.ResolveIdentity(context.Background(), "ok")
	if err != nil {
		t.Fatalf("thumbnail failure must not invalidate login, got %v", err)
	}
	if identity.AvatarURL != "" {
		t.Errorf("expected empty avatar url, got %s", identity.AvatarURL)
	}
}
