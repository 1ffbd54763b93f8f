package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/venue-service/internal/domain"
)

func TestResolveAuthorities_PlainUser(t *testing.T) {
	granted := ResolveAuthorities(domain.UserTypeUser, nil)
	assert.Equal(t, []string{"ROLE_USER"}, granted)
}

func TestResolveAuthorities_AdminElevation(t *testing.T) {
	granted := ResolveAuthorities(domain.UserTypeAdmin, nil)
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_ADMIN", "ROLE_USER", "ROLE_MERCHANT"}, granted)
}

func TestResolveAuthorities_AppendsRoleCodes(t *testing.T) {
	roles := []domain.Role{
		{Code: "VIP"},
		{Code: "STAFF"},
	}
	granted := ResolveAuthorities(domain.UserTypeUser, roles)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_VIP", "ROLE_STAFF"}, granted)
}

func TestResolveAuthorities_DuplicatesKept(t *testing.T) {
	// A role code equal to the account type produces a duplicate entry;
	// membership checks are unaffected.
	granted := ResolveAuthorities(domain.UserTypeMerchant, []domain.Role{{Code: "MERCHANT"}})
	assert.Equal(t, []string{"ROLE_MERCHANT", "ROLE_MERCHANT"}, granted)
}

func TestHasAuthority(t *testing.T) {
	granted := ResolveAuthorities(domain.UserTypeAdmin, []domain.Role{{Code: "VIP"}})
	assert.True(t, HasAuthority(granted, "ROLE_ADMIN"))
	assert.True(t, HasAuthority(granted, "ROLE_MERCHANT"))
	assert.True(t, HasAuthority(granted, "ROLE_VIP"))
	assert.False(t, HasAuthority(granted, "ROLE_STAFF"))
	assert.False(t, HasAuthority(nil, "ROLE_USER"))
}
