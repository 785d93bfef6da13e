package domain

import "time"

// Session is a persisted login. SessionToken backs the browser session channel,
// APIToken the bearer channel.
type Session struct {
	ID           int64
	UserID       int64
	SessionToken string
	APIToken     string
	ExpiresAt    time.Time
	IsActive     bool
	IPAddress    string
	UserAgent    string
	CreatedAt    time.Time
}

// ValidAt reports whether the record can authenticate a request at now.
// Expiry is exclusive: a record expiring exactly at now is already invalid.
func (s *Session) ValidAt(now time.Time) bool {
	return s.IsActive && s.ExpiresAt.After(now)
}

// WebSession holds the values the server-side session keeps for a browser
// client. Both must be present for the session channel to be attempted.
type WebSession struct {
	UserID       int64  `json:"user_id"`
	SessionToken string `json:"session_token"`
}

// Complete reports whether both session values are set.
func (w *WebSession) Complete() bool {
	return w != nil && w.UserID > 0 && w.SessionToken != ""
}
