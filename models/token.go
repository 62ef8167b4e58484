package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT issued for the admin API.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// Admin is the operator named in the "sub" claim.
	Admin string `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
