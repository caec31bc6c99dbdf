package domain

import "time"

// User is the stored account record. Username is unique.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	Age          int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
