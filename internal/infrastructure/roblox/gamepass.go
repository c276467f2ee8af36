package roblox

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/buxzona/buxzona-backend/internal/domain"
)

// GamepassPrice fetches the listing page and extracts the Robux price from
// the configured selector. Thousands separators are stripped before parsing.
func (c *Client) GamepassPrice(ctx context.Context, gamepassURL string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gamepassURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: gamepass page: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: gamepass page returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to parse gamepass page: %v", domain.ErrParse, err)
	}

	text := strings.TrimSpace(doc.Find(c.cfg.GamepassSelector).First().Text())
	text = strings.ReplaceAll(text, ",", "")

	price, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: gamepass price not found at selector %q", domain.ErrParse, c.cfg.GamepassSelector)
	}

	return price, nil
}
