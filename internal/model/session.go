package model

import "time"

// SessionID uniquely identifies a device session
type SessionID string

// Session is a device connection context owned by exactly one player
type Session struct {
	ID       SessionID
	PlayerID PlayerID
	Device   string
	Platform int
	Version  string
	Region   string

	OpenedAt time.Time
	ClosedAt *time.Time // nil while the session is open
}

// Open reports whether the session has not been closed yet
func (s *Session) Open() bool {
	return s.ClosedAt == nil
}
