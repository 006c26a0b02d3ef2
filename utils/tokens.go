package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// DevClaims is the payload of a locally signed identity token. The subject
// carries the identity-provider uid.
type DevClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.StandardClaims
}

// Manager signs and parses HS256 identity tokens for environments without an
// external identity provider.
type Manager struct {
	signingKey string
}

func NewManager(signingKey string) (*Manager, error) {
	if signingKey == "" {
		return nil, errors.New("empty signing key")
	}

	return &Manager{signingKey: signingKey}, nil
}

func (m *Manager) NewJWT(uid, email, name string, ttl time.Duration) (string, error) {
	if uid == "" {
		return "", errors.New("empty subject")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, DevClaims{
		Email: email,
		Name:  name,
		StandardClaims: jwt.StandardClaims{
			Subject:   uid,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	})

	return token.SignedString([]byte(m.signingKey))
}

func (m *Manager) Parse(accessToken string) (DevClaims, error) {
	claims := DevClaims{}
	token, err := jwt.ParseWithClaims(accessToken, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.signingKey), nil
	})
	if err != nil {
		return DevClaims{}, err
	}
	if !token.Valid {
		return DevClaims{}, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return DevClaims{}, errors.New("token has no subject")
	}

	return claims, nil
}
