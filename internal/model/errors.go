package model

import "errors"

// Common errors used across the application
var (
	// Envelope errors
	ErrEmptyResponse     = errors.New("empty response body")
	ErrMalformedEnvelope = errors.New("malformed response envelope")

	// Backend entity errors
	ErrPlayerNotFound     = errors.New("player not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionClosed      = errors.New("session already closed")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentActive   = errors.New("tournament already active")
	ErrInvalidPlatform    = errors.New("invalid platform")

	// Fixture errors
	ErrFixtureNotFound = errors.New("fixture not found")
	ErrReleaseFailed   = errors.New("fixture release failed")
)
