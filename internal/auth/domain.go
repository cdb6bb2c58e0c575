package auth

import "time"

// User is an authenticated account. RoleID is assigned at provisioning
// time and only an administrator changes it afterwards.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        *string
	RoleID       string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
