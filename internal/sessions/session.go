package sessions

import "time"

// Session records a credential that already passed the bcrypt check, so
// repeat requests from the same account skip it until ExpiresAt.
type Session struct {
	Key       string    `json:"key"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
