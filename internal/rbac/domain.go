package rbac

// Role groups permissions. Roles are static reference data, seeded at
// deployment.
type Role struct {
	ID          string
	Name        string
	Description string
}

// Permission is an atomic grantable capability. Consumers depend only
// on Key.
type Permission struct {
	ID          string
	Key         string
	Description string
}

// RolePermission joins a role to a permission. The effective permission
// set of a role is exactly the keys of its joined rows.
type RolePermission struct {
	RoleID       string
	PermissionID string
}
