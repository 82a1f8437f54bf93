package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims issued to authenticated users. The same
// token authorizes both REST calls and the WebSocket handshake.
type Payload struct {
	// StandardClaims embeds Exp, Iat and Iss, required for validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the authenticated user's id.
	ID string `json:"id"`

	// Email is carried for logging and diagnostics only; authorization
	// decisions use ID.
	Email string `json:"email,omitempty"`
}
