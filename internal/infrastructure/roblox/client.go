package roblox

import (
	"net/http"
	"strings"
	"time"

	"github.com/buxzona/buxzona-backend/internal/config"
)

// Client wraps the platform's users, thumbnails and catalog-page endpoints.
type Client struct {
	cfg        config.Roblox
	httpClient *http.Client
}

func NewClient(cfg config.Roblox) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func trimBase(url string) string {
	return strings.TrimRight(url, "/")
}
