package services

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// GoogleAuthenticator runs the OAuth2 authorization-code flow against
// Google and verifies the returned ID token. Students sign in this way;
// credential accounts never touch it.
type GoogleAuthenticator struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
}

// GoogleIdentity is the verified subset of ID-token claims the platform
// uses to find or create the student account.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

func NewGoogleAuthenticator(ctx context.Context, clientID, clientSecret, redirectURL string) (*GoogleAuthenticator, error) {
	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, fmt.Errorf("failed to discover Google OIDC provider: %w", err)
	}

	return &GoogleAuthenticator{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// AuthURL builds the consent-screen redirect for the given anti-CSRF
// state.
func (g *GoogleAuthenticator) AuthURL(state string) string {
	return g.oauthConfig.AuthCodeURL(state)
}

// Exchange trades the callback code for tokens and verifies the ID
// token's signature and claims.
func (g *GoogleAuthenticator) Exchange(ctx context.Context, code string) (*GoogleIdentity, error) {
	oauth2Token, err := g.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("no ID token in response")
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("ID token verification failed: %w", err)
	}

	var claims struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to extract claims: %w", err)
	}
	if claims.Sub == "" || claims.Email == "" {
		return nil, fmt.Errorf("ID token missing subject or email")
	}

	return &GoogleIdentity{
		Subject: claims.Sub,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}
