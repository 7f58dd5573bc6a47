package juice_client

const (
	// Base URL
	BaseURL = "https://api.juice.gg"

	// API Endpoints
	LeaderboardEndpoint = "/leaderboard"

	// Headers
	ContentTypeHeader = "Content-Type"
	ContentTypeJSON   = "application/json"
)
