package model

import "time"

// PlayerID uniquely identifies a backend player
type PlayerID string

// Player is a backend account created implicitly by openSession
type Player struct {
	ID        PlayerID
	Device    string
	Nickname  string
	Token     string
	Platform  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
