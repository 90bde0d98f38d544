package model

import (
	"time"

	"lifeguard/shared/model"
)

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldFullName  = "full_name"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

// Admin is a back-office account allowed to manage bookings and staff.
type Admin struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Role      string     `db:"role"`
	FullName  string     `db:"full_name"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
