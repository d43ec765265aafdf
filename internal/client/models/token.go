package models

import "time"

// ResetToken binds a password-reset token to its subject.
type ResetToken struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	Created  time.Time `json:"created"`
}

// Expired reports whether the token is older than ttl at now.
func (t ResetToken) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(t.Created) > ttl
}
