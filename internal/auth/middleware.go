package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "auth_principal"

const bearerPrefix = "Bearer "

// Principal represents the authenticated caller as recovered from an access
// token. It is never reloaded from storage during request handling.
type Principal struct {
	MemberID    string
	Authorities []string
}

// HasAuthority reports whether the principal carries the given authority.
func (p *Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// AuthMiddleware attaches principals recovered from bearer tokens.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate resolves the bearer token, if any, and stores the principal in
// request state. Absent, malformed, expired or badly signed tokens leave the
// request anonymous; route guards decide whether anonymous access is allowed.
func (m *AuthMiddleware) Authenticate(c *fiber.Ctx) error {
	token := bearerToken(c.Get(fiber.HeaderAuthorization))
	if token == "" {
		return c.Next()
	}

	claims, err := m.tokens.ParseAccessToken(token)
	if err != nil {
		return c.Next()
	}

	c.Locals(principalKey, &Principal{
		MemberID:    claims.Subject,
		Authorities: claims.Authorities,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// bearerToken extracts the token from an Authorization header value. The
// scheme prefix is case-sensitive; the remainder is trimmed of whitespace.
func bearerToken(header string) string {
	raw, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return ""
	}
	return strings.TrimSpace(raw)
}
