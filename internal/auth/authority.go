package auth

import "github.com/spec-kit/venue-service/internal/domain"

const authorityPrefix = "ROLE_"

// ResolveAuthorities derives the authority strings granted to an account:
// the account's own type, the hard-coded admin elevation, then one entry per
// assigned role code. Order is insertion order and duplicates are kept; the
// downstream checks treat the slice as a membership list, not a set.
func ResolveAuthorities(userType domain.UserType, roles []domain.Role) []string {
	authorities := []string{authorityPrefix + string(userType)}

	// Admins implicitly gain end-user and merchant capabilities.
	if userType == domain.UserTypeAdmin {
		authorities = append(authorities,
			authorityPrefix+string(domain.UserTypeAdmin),
			authorityPrefix+string(domain.UserTypeUser),
			authorityPrefix+string(domain.UserTypeMerchant),
		)
	}

	for _, role := range roles {
		authorities = append(authorities, authorityPrefix+role.Code)
	}

	return authorities
}

// HasAuthority reports whether the granted list contains the authority.
func HasAuthority(granted []string, authority string) bool {
	for _, a := range granted {
		if a == authority {
			return true
		}
	}
	return false
}
