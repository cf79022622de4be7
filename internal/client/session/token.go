// Package session encodes the single active sign-in as a signed token.
// Signing means a corrupted or hand-edited session record fails validation
// and simply reads as "no session" instead of producing garbage user data.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/osetrov/healthkeeper/internal/client/models"
)

// ErrInvalidToken reports a session record that failed parsing or signature
// validation.
var ErrInvalidToken = errors.New("invalid session token")

// Claims carries the signed-in user inside the session token.
type Claims struct {
	jwt.RegisteredClaims
	Email            string    `json:"email"`
	AccountCreatedAt time.Time `json:"accountCreatedAt"`
}

// Encode builds a signed HS256 token for the given user. IssuedAt records
// the sign-in instant. Sessions do not expire on their own; they last until
// sign-out.
func Encode(user models.User, signedInAt time.Time, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(signedInAt),
		},
		Email:            user.Email,
		AccountCreatedAt: user.CreatedAt,
	})
	return token.SignedString(secret)
}

// Decode validates the token signature and returns the user plus the
// sign-in instant.
func Decode(tokenString string, secret []byte) (*models.User, time.Time, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	if !token.Valid {
		return nil, time.Time{}, ErrInvalidToken
	}

	user := &models.User{Email: claims.Email, CreatedAt: claims.AccountCreatedAt}

	var signedInAt time.Time
	if claims.IssuedAt != nil {
		signedInAt = claims.IssuedAt.Time
	}
	return user, signedInAt, nil
}
