// Package identity turns bearer credentials into verified identity claims.
// The verifier is chosen once at startup and injected; when no provider is
// configured a disabled verifier rejects every credential.
package identity

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"

	"fabhomes/internal/models"
	"fabhomes/utils"
)

var (
	ErrDisabled     = errors.New("identity: no identity provider configured")
	ErrEmptyToken   = errors.New("identity: empty credential")
	ErrMissingClaim = errors.New("identity: token has no uid")
)

type Verifier interface {
	Verify(ctx context.Context, token string) (models.IdentityClaims, error)
}

// Disabled is the stand-in used when no provider is configured.
type Disabled struct{}

func (Disabled) Verify(context.Context, string) (models.IdentityClaims, error) {
	return models.IdentityClaims{}, ErrDisabled
}

// idTokenVerifier is the part of the Firebase auth client we use.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type FirebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier initialises a Firebase app from a service account file.
func NewFirebaseVerifier(ctx context.Context, credentialsFile, projectID string) (*FirebaseVerifier, error) {
	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (models.IdentityClaims, error) {
	tok, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return models.IdentityClaims{}, err
	}
	if tok.UID == "" {
		return models.IdentityClaims{}, ErrMissingClaim
	}
	claims := models.IdentityClaims{UID: tok.UID}
	claims.Email, _ = tok.Claims["email"].(string)
	claims.Name, _ = tok.Claims["name"].(string)
	return claims, nil
}

// DevVerifier accepts tokens signed with the local development key.
type DevVerifier struct {
	Tokens *utils.Manager
}

func (v DevVerifier) Verify(_ context.Context, token string) (models.IdentityClaims, error) {
	c, err := v.Tokens.Parse(token)
	if err != nil {
		return models.IdentityClaims{}, err
	}
	return models.IdentityClaims{UID: c.Subject, Email: c.Email, Name: c.Name}, nil
}
