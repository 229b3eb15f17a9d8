package domain

import (
	"crypto/subtle"
	"strings"
)

// Role is the single authorization attribute of a team member.
type Role string

const (
	RoleSuperAdmin Role = "super-admin"
	RoleAdmin      Role = "admin"
	RoleMember     Role = "member"
)

// IsValid returns true if the role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// ParseRole parses a string into a Role.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// User is a team member who can sign in and act on tasks.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	AccessCode string `json:"-"`
}

// IsSuperAdmin reports whether the user may perform deletions.
func (u User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// MatchesCredentials reports whether email and code identify this user.
func (u User) MatchesCredentials(email, code string) bool {
	if !strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(email)) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u.AccessCode), []byte(code)) == 1
}

// RequireSuperAdmin returns ErrSuperAdminRequired unless u is a super-admin.
func RequireSuperAdmin(u User) error {
	if !u.IsSuperAdmin() {
		return ErrSuperAdminRequired
	}
	return nil
}
