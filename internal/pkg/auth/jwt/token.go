/*
Package jwt issues and verifies the HS256 tokens used for user identity and
server invites. Both kinds are signed with the same process secret and are
told apart by their "type" claim.
*/
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// UserIdentityExpiration is the lifetime of a login token.
	UserIdentityExpiration = 7 * 24 * time.Hour

	// InviteExpiration is the lifetime of an invite capability.
	InviteExpiration = 7 * 24 * time.Hour

	// TokenIssuer identifies tokens minted by this server.
	TokenIssuer = "Geopolitik-Server"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongType    = errors.New("token type not accepted here")
)

// nowFunc is overridden in tests to mint already-expired tokens.
var nowFunc = time.Now

func standardClaims(duration time.Duration) jwt.StandardClaims {
	now := nowFunc()
	return jwt.StandardClaims{
		ExpiresAt: now.Add(duration).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    TokenIssuer,
	}
}

func sign(claims jwt.Claims, secretKey string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
}

func parse(tokenString string, claims jwt.Claims, secretKey string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// GenerateToken signs an identity token for payload, valid for duration.
func GenerateToken(payload *Payload, secretKey string, duration time.Duration) (string, error) {
	payload.StandardClaims = standardClaims(duration)
	payload.Type = TypeIdentity
	return sign(payload, secretKey)
}

// ParseToken verifies an identity token and returns its payload.
func ParseToken(tokenString string, secretKey string) (*Payload, error) {
	claims := &Payload{}
	if err := parse(tokenString, claims, secretKey); err != nil {
		return nil, err
	}
	if claims.Type != TypeIdentity || claims.ID == "" {
		return nil, ErrWrongType
	}
	return claims, nil
}

// GenerateInvite signs an invite capability for serverID.
func GenerateInvite(serverID string, secretKey string, duration time.Duration) (string, error) {
	return sign(&InviteClaims{
		StandardClaims: standardClaims(duration),
		ServerID:       serverID,
		Type:           TypeInvite,
	}, secretKey)
}

// ParseInvite verifies an invite capability and returns the server id it grants.
func ParseInvite(tokenString string, secretKey string) (string, error) {
	claims := &InviteClaims{}
	if err := parse(tokenString, claims, secretKey); err != nil {
		return "", err
	}
	if claims.Type != TypeInvite || claims.ServerID == "" {
		return "", ErrWrongType
	}
	return claims.ServerID, nil
}
