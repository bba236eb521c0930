package models

import "time"

// Occupant is a seat-holder profile, keyed by the auth user id. It is
// created at registration and afterwards only mutated by its owner.
type Occupant struct {
	ID           string    `json:"id"`
	Seat         int       `json:"seat"`
	UserName     string    `json:"userName"`
	Title        string    `json:"title"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	URL          *string   `json:"url,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
