package juice_client

import (
	"context"
	"fmt"
	"net/url"
)

// LeaderboardPath returns the feed path for an optional board code
func LeaderboardPath(code string) string {
	if code == "" {
		return LeaderboardEndpoint
	}
	return fmt.Sprintf("%s/%s", LeaderboardEndpoint, url.PathEscape(code))
}

// FetchLeaderboard returns the raw feed body. Shape detection is left to the caller
// since the partner has served several envelopes over time.
func (c *Client) FetchLeaderboard(ctx context.Context) ([]byte, error) {
	body, err := c.Get(ctx, LeaderboardPath(c.code))
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return body, nil
}
