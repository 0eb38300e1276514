package domain

import "time"

// UserRecord is the stored identity of a login account.
type UserRecord struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
