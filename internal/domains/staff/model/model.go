package model

import "lifeguard/shared/model"

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID            = "id"
	FieldName          = "name"
	FieldContactNumber = "contact_number"
	FieldEmail         = "email"
	FieldIsActive      = "is_active"
)

const (
	CacheGet    = "staff:get"
	CacheGetAll = "staff:gets"
	CacheCount  = "staff:count"
)

// Staff is a lifeguard that can be put on bookings.
type Staff struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	ContactNumber string `db:"contact_number"`
	Email         string `db:"email"`
	IsActive      bool   `db:"is_active"`
	model.Metadata
}
