package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserType_CanonicalValues(t *testing.T) {
	for _, value := range []string{"ADMIN", "MERCHANT", "STAFF", "USER"} {
		parsed, ok := ParseUserType(value)
		assert.True(t, ok, value)
		assert.Equal(t, UserType(value), parsed)
	}
}

func TestParseUserType_CaseInsensitive(t *testing.T) {
	parsed, ok := ParseUserType("admin")
	assert.True(t, ok)
	assert.Equal(t, UserTypeAdmin, parsed)

	parsed, ok = ParseUserType("Merchant")
	assert.True(t, ok)
	assert.Equal(t, UserTypeMerchant, parsed)
}

func TestParseUserType_LegacyAliases(t *testing.T) {
	cases := map[string]UserType{
		"B_MERCHANT": UserTypeMerchant,
		"B_STAFF":    UserTypeStaff,
		"C_USER":     UserTypeUser,
		"b_merchant": UserTypeMerchant,
	}
	for value, want := range cases {
		parsed, ok := ParseUserType(value)
		assert.True(t, ok, value)
		assert.Equal(t, want, parsed)
	}
}

func TestParseUserType_UnknownFallsBackToUser(t *testing.T) {
	parsed, ok := ParseUserType("SUPERUSER")
	assert.False(t, ok)
	assert.Equal(t, UserTypeUser, parsed)

	parsed, ok = ParseUserType("")
	assert.False(t, ok)
	assert.Equal(t, UserTypeUser, parsed)
}
