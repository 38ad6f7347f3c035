package jwt

import "github.com/golang-jwt/jwt"

const (
	// TypeIdentity marks a token that authenticates a user.
	TypeIdentity = "identity"

	// TypeInvite marks a capability token scoped to one game server.
	TypeInvite = "invite"
)

// Payload is the claim set of an identity token.
type Payload struct {
	jwt.StandardClaims

	// ID is the user id the token was issued to.
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`

	// Type is TypeIdentity. Tokens of any other type are not accepted as identities.
	Type string `json:"type"`
}

// DisplayName is the name shown to other players, falling back to the email and then "Player".
func (p *Payload) DisplayName() string {
	switch {
	case p.Name != "":
		return p.Name
	case p.Email != "":
		return p.Email
	default:
		return "Player"
	}
}

// InviteClaims is the claim set of an invite capability.
type InviteClaims struct {
	jwt.StandardClaims

	ServerID string `json:"serverId"`
	Type     string `json:"type"`
}
