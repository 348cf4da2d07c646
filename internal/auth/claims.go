package auth

import (
	"time"

	"github.com/listenupapp/library-client/internal/domain"
)

// AccessClaims are the claims carried by a fixture session token.
// v4.local tokens are encrypted, so these are opaque to the holder.
type AccessClaims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`

	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// IsAdmin reports whether the token was minted for an admin.
func (c *AccessClaims) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}
