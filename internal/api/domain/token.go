package domain

import "time"

// Token is the persistent opaque bearer credential for a user. Each user
// holds at most one token, and repeat authentication hands back the same
// key until the token is invalidated, so the key itself is stored rather
// than a digest.
type Token struct {
	Key       string
	UserID    string
	CreatedAt time.Time
}
