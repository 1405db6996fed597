package domain

import "time"

// Guide leads trips.
type Guide struct {
	ID                int64
	Name              string
	Email             string
	PhoneNumber       string
	YearsOfExperience int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
