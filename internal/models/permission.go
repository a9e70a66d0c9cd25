package models

import "fmt"

// Permission is a capability a user can hold. The set is closed: anything
// outside the constants below is rejected at the boundary.
type Permission string

const (
	PermissionAdmin            Permission = "ADMIN"
	PermissionUser             Permission = "USER"
	PermissionItemCreate       Permission = "ITEMCREATE"
	PermissionItemUpdate       Permission = "ITEMUPDATE"
	PermissionItemDelete       Permission = "ITEMDELETE"
	PermissionPermissionUpdate Permission = "PERMISSIONUPDATE"
)

// allPermissions is the closed enumeration used for validation.
var allPermissions = map[Permission]bool{
	PermissionAdmin:            true,
	PermissionUser:             true,
	PermissionItemCreate:       true,
	PermissionItemUpdate:       true,
	PermissionItemDelete:       true,
	PermissionPermissionUpdate: true,
}

// Valid reports whether p is a known permission.
func (p Permission) Valid() bool {
	return allPermissions[p]
}

// ParsePermissions converts raw strings into Permissions, failing on any
// value outside the closed set.
func ParsePermissions(raw []string) ([]Permission, error) {
	perms := make([]Permission, 0, len(raw))
	for _, r := range raw {
		p := Permission(r)
		if !p.Valid() {
			return nil, fmt.Errorf("unknown permission: %s", r)
		}
		perms = append(perms, p)
	}
	return perms, nil
}
