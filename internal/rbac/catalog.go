package rbac

// Permission keys. These are wire-stable, case-sensitive strings: the
// catalog below is the single source of truth for valid keys, and both
// the destination registry and the API middleware reference it.
const (
	PermMovementsRead   = "MOVEMENTS_READ"
	PermMovementsCreate = "MOVEMENTS_CREATE"
	PermReportsRead     = "REPORTS_READ"
	PermUsersRead       = "USERS_READ"
	PermUsersEdit       = "USERS_EDIT"
)

// AllPermissionKeys lists every key in the catalog.
func AllPermissionKeys() []string {
	return []string{
		PermMovementsRead,
		PermMovementsCreate,
		PermReportsRead,
		PermUsersRead,
		PermUsersEdit,
	}
}

// KnownPermission reports whether key exists in the catalog.
func KnownPermission(key string) bool {
	for _, k := range AllPermissionKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether held covers every required key.
// Pure all-of matching: an empty required list is vacuously true for
// any held set, including an anonymous empty one. Keys are compared
// exactly, no normalization.
func HasAllPermissions(held []string, required []string) bool {
	if len(required) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(held))
	for _, k := range held {
		set[k] = struct{}{}
	}
	for _, k := range required {
		if _, ok := set[k]; !ok {
			return false
		}
	}
	return true
}
