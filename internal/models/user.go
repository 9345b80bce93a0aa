// Package models contains the domain structures of the marketplace:
// users, vendor profiles, events, planning groups and quote requests.
package models

import "time"

// User roles. Role alone decides routing and access to admin and vendor
// surfaces; no other profile field participates in access control.
const (
	RoleUser       = "user"
	RoleStaff      = "staff"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// IsAdminRole reports whether the role grants access to the admin app.
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// User is a registered account on the platform.
type User struct {
	UID                 string     // Unique user identifier
	Email               string     // E-mail, unique
	Username            string     // Public handle, unique
	Name                string     // Display name
	PasswordHash        string     `json:"-"` // bcrypt hash, never serialized
	Role                string     // user, staff, admin or super_admin
	Phone               string     // Optional contact phone
	City                string     // Optional city
	Bio                 string     // Optional bio
	AvatarURL           string     // Optional avatar image
	VendorProfileExists bool       // True once the user onboards a vendor profile
	Permissions         []string   // Additional permission strings
	CreatedAt           time.Time  //
	LastLoginAt         *time.Time //
}
