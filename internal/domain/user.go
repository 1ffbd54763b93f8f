package domain

import (
	"strings"
	"time"
)

// UserType classifies accounts on the platform.
type UserType string

const (
	UserTypeAdmin    UserType = "ADMIN"
	UserTypeMerchant UserType = "MERCHANT"
	UserTypeStaff    UserType = "STAFF"
	UserTypeUser     UserType = "USER"
)

// ParseUserType maps a raw string to a UserType. Matching is case-insensitive
// and accepts the legacy prefixed aliases still present in older records.
// Unrecognized values fall back to USER; callers should log when ok is false
// so a bad value stays visible instead of being silently absorbed.
func ParseUserType(value string) (userType UserType, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "ADMIN":
		return UserTypeAdmin, true
	case "MERCHANT", "B_MERCHANT":
		return UserTypeMerchant, true
	case "STAFF", "B_STAFF":
		return UserTypeStaff, true
	case "USER", "C_USER":
		return UserTypeUser, true
	default:
		return UserTypeUser, false
	}
}

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
	UserStatusLocked   UserStatus = "LOCKED"
)

// MemberLevel enumerates loyalty tiers for end-users.
type MemberLevel string

const (
	MemberLevelBronze   MemberLevel = "BRONZE"
	MemberLevelSilver   MemberLevel = "SILVER"
	MemberLevelGold     MemberLevel = "GOLD"
	MemberLevelPlatinum MemberLevel = "PLATINUM"
	MemberLevelDiamond  MemberLevel = "DIAMOND"
)

// User is the domain model for every platform account: end-users, merchant
// operators, merchant staff, and administrators.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	RealName     string
	Phone        string
	Email        string
	UserType     UserType
	MerchantID   *int64
	MerchantName string
	Status       UserStatus
	Points       int
	MemberLevel  MemberLevel
	LastLoginAt  *time.Time
	LastLoginIP  string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
