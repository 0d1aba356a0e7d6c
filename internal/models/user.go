package models

import "time"

// UserRole represents the recognised account roles.
type UserRole string

const (
	RoleSuperadmin  UserRole = "superadmin"
	RoleSchoolAdmin UserRole = "school_admin"
)

// Valid reports whether the role is one of the recognised values.
func (r UserRole) Valid() bool {
	return r == RoleSuperadmin || r == RoleSchoolAdmin
}

// User represents an account stored in the users table. SchoolID is set only
// for school_admin accounts and scopes every tenant-bound operation.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	SchoolID     *string   `db:"school_id" json:"schoolId,omitempty"`
	Active       bool      `db:"active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// UserProfile is a user joined with the name of its school, when any.
type UserProfile struct {
	User
	SchoolName *string `db:"school_name" json:"schoolName,omitempty"`
}
