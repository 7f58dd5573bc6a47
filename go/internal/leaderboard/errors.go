package leaderboard

import "errors"

var (
	// ErrUnrecognizedShape is returned when a feed body matches none of the known envelopes
	ErrUnrecognizedShape = errors.New("unrecognized leaderboard response shape")

	// ErrMalformedEntry is returned when a matched body carries an unusable entry
	ErrMalformedEntry = errors.New("malformed leaderboard entry")

	// ErrUpstreamRejected is returned when the envelope reports success=false
	ErrUpstreamRejected = errors.New("upstream reported failure")

	// ErrEmptyLeaderboard is returned when a well-formed feed carries no entries
	ErrEmptyLeaderboard = errors.New("leaderboard feed is empty")

	ErrPollerRunning    = errors.New("leaderboard poller already running")
	ErrPollerNotRunning = errors.New("leaderboard poller not running")
)
