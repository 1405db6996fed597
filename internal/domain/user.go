package domain

import "time"

// DefaultRoleName is granted to every newly registered user.
const DefaultRoleName = "USER"

// User is the credential record behind login and registration.
// Roles carries the upper-cased role tags granted to the user.
type User struct {
	Username     string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}

// Role is a grantable role tag such as USER or ADMIN.
type Role struct {
	Name      string
	CreatedAt time.Time
}
