package domain

import "time"

// RoleType distinguishes platform-defined roles from merchant-scoped ones.
type RoleType string

const (
	RoleTypeSystem   RoleType = "SYSTEM"
	RoleTypeMerchant RoleType = "MERCHANT"
	RoleTypeCustom   RoleType = "CUSTOM"
)

// RoleStatus represents lifecycle states for a role.
type RoleStatus string

const (
	RoleStatusActive   RoleStatus = "ACTIVE"
	RoleStatusInactive RoleStatus = "INACTIVE"
)

// Role is an assignable capability grouping. Its Code feeds directly into
// authority strings (ROLE_<code>) during authentication.
type Role struct {
	ID         int64
	Code       string
	Name       string
	Descr      string
	RoleType   RoleType
	MerchantID *int64
	Status     RoleStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
