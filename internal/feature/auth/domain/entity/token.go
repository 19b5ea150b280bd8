package entity

import "time"

// Token is a stored bearer token record. ID is the random identifier embedded
// in the signed bearer string; a bearer string authenticates only while its
// record exists.
type Token struct {
	ID        string    // Random v4 UUID
	UserID    uint      // Owning user
	CreatedAt time.Time // Issue time
	ExpiresAt time.Time // Expiry, mirrored in the bearer string
}

// IsExpired reports whether the token has passed its expiry at now.
func (t *Token) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
