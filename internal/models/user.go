package models

import "time"

type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusUnconfirmed UserStatus = "unconfirmed"
	UserStatusSuspended   UserStatus = "suspended"
)

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	DisplayName  string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the persisted counterpart of a logged-in client. Deleting
// the row revokes the token even if the JWT itself has not expired.
type Session struct {
	ID        string
	UserID    string
	TokenHash []byte
	IPAddress string
	UserAgent string
	CreatedAt time.Time
	ExpiresAt time.Time
}
