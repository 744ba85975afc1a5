package model

import "time"

// TournamentID is chosen by the caller when starting a tournament
type TournamentID string

// Tournament is a competitive context a player joins with one of their sessions
type Tournament struct {
	ID        TournamentID
	PlayerID  PlayerID
	SessionID SessionID
	StartedAt time.Time
}
