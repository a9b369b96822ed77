package entity

import "time"

// Session is the server-side record behind an issued token pair. Only the
// token carrying the current SessionID is honored.
type Session struct {
	UserID    string
	SessionID string
	Email     string
	Name      string
	CreatedAt time.Time
}
