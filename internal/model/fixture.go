package model

import "time"

// FixtureKind distinguishes the backend resources the suite creates
type FixtureKind string

const (
	FixturePlayer     FixtureKind = "player"
	FixtureTournament FixtureKind = "tournament"
)

// Fixture records a backend resource created by a suite run that has not
// been torn down yet
type Fixture struct {
	Kind      FixtureKind `json:"kind"`
	ID        string      `json:"id"`
	PlayerID  string      `json:"player_id,omitempty"` // owner, for tournaments
	RunID     string      `json:"run_id"`
	CreatedAt time.Time   `json:"created_at"`
}
