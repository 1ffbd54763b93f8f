package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/venue-service/pkg/util"
)

// RequireAuthenticated rejects requests that carry no principal. The response
// is the generic access-denied shape regardless of why authentication failed.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewAccessDenied()
		}
		return c.Next()
	}
}

// RequireAuthority rejects requests whose principal lacks all of the listed
// authorities. Granting any one of them is enough.
func RequireAuthority(authorities ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewAccessDenied()
		}
		for _, authority := range authorities {
			if HasAuthority(principal.Authorities, authority) {
				return c.Next()
			}
		}
		return apperrors.NewAccessDenied()
	}
}
