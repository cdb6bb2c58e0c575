package users

import "time"

// User is a managed account. Every user has exactly one role.
type User struct {
	ID        string
	Name      string
	Email     string
	Phone     *string
	RoleID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListItem is a user row joined with its role name for listings.
type ListItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	RoleName string  `json:"roleName"`
}

// Detail is the single-user shape served to the edit form.
type Detail struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  *string `json:"phone"`
	RoleID string  `json:"roleId"`
}
