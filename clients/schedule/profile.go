package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"shootscout/models"
)

// profileResponse is the slice of a photographer profile the engine cares about.
type profileResponse struct {
	ID      models.FlexID  `json:"id"`
	Address models.Address `json:"address"`
}

// ProfileAddress fetches a photographer's stored profile address. Used as the
// secondary distance origin when the comprehensive lookup is unavailable.
func (c *Client) ProfileAddress(ctx context.Context, photographerID string) (models.Address, error) {
	endpoint := fmt.Sprintf("%s/photographers/%s/profile", c.baseURL, url.PathEscape(photographerID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Address{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Address{}, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return models.Address{}, fmt.Errorf("profile request returned status %d", resp.StatusCode)
	}

	var profile profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return models.Address{}, fmt.Errorf("decoding profile response failed: %w", err)
	}
	return profile.Address, nil
}
