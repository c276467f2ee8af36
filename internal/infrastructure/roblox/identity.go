package roblox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/buxzona/buxzona-backend/internal/domain"
)

type authenticatedUserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type thumbnailResponse struct {
	Data []struct {
		ImageURL string `json:"imageUrl"`
	} `json:"data"`
}

// ResolveIdentity exchanges a session cookie for the authenticated user and
// their avatar URL. Malformed, expired and revoked cookies all collapse to
// ErrInvalidCredential; the upstream does not distinguish them and neither
// do we.
func (c *Client) ResolveIdentity(ctx context.Context, cookie string) (*domain.UserIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		trimBase(c.cfg.UsersAPIURL)+"/v1/users/authenticated", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.AddCookie(&http.Cookie{Name: ".ROBLOSECURITY", Value: cookie})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: users API: %v", domain.ErrInvalidCredential, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: users API returned status %d", domain.ErrInvalidCredential, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read users response: %v", domain.ErrInvalidCredential, err)
	}

	var user authenticatedUserResponse
	if err := json.Unmarshal(body, &user); err != nil || user.ID == 0 {
		return nil, fmt.Errorf("%w: no user id in response", domain.ErrInvalidCredential)
	}

	identity := &domain.UserIdentity{
		ID:   user.ID,
		Name: user.Name,
	}

	// Avatar is cosmetic. A thumbnail failure must not invalidate the login.
	if avatarURL, err := c.fetchAvatarURL(ctx, user.ID); err == nil {
		identity.AvatarURL = avatarURL
	}

	return identity, nil
}

func (c *Client) fetchAvatarURL(ctx context.Context, userID int64) (string, error) {
	url := fmt.Sprintf("%s/v1/users/avatar-headshot?userIds=%d&size=150x150&format=Png",
		trimBase(c.cfg.ThumbnailsAPIURL), userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: thumbnails API: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: thumbnails API returned status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var parsed thumbnailResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: malformed thumbnail response: %v", domain.ErrParse, err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].ImageURL == "" {
		return "", fmt.Errorf("%w: no thumbnail in response", domain.ErrParse)
	}

	return parsed.Data[0].ImageURL, nil
}
