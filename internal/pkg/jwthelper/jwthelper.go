package jwthelper

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSigningKey is returned when token issuance is requested
// but no signing key is configured. Verification with an empty key
// always fails for the same reason.
var ErrMissingSigningKey = errors.New("JWT signing key is not configured")

// EventClaims asserts that the holder authenticated against one event.
// The token deliberately carries no expiry.
type EventClaims struct {
	EventID string `json:"eventId"`
	jwt.RegisteredClaims
}

func GenerateEventToken(signingKey []byte, eventID string) (string, error) {
	if len(signingKey) == 0 {
		return "", ErrMissingSigningKey
	}

	claims := EventClaims{
		EventID: eventID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signingKey)
	if err != nil {
		return "", fmt.Errorf("token.SignedString -> %w", err)
	}

	return signed, nil
}

// VerifyEventToken reports whether tokenString is validly signed and
// embeds exactly eventID. All failures degrade to false.
func VerifyEventToken(signingKey []byte, tokenString, eventID string) bool {
	if len(signingKey) == 0 {
		return false
	}

	token, err := jwt.ParseWithClaims(tokenString, &EventClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}

		return signingKey, nil
	})
	if err != nil {
		return false
	}

	claims, ok := token.Claims.(*EventClaims)

	return ok && token.Valid && claims.EventID == eventID
}
