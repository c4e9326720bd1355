// Package auth provides JWT authentication for the Skydrive API.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenType indicates whether a token is an access token or refresh token.
type TokenType string

const (
	// TokenTypeAccess is a short-lived token used for API authorization.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh is a long-lived token used to obtain new access tokens.
	TokenTypeRefresh TokenType = "refresh"
)

// Claims represents JWT claims for Skydrive authentication.
//
// The UserID claim is the ownerID threaded into every drive operation; the
// drive core never trusts ids from request bodies or URLs for ownership.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the unique identifier (UUID) for the user.
	UserID string `json:"uid"`

	// Email is the user's login email.
	Email string `json:"email"`

	// TokenType indicates whether this is an access or refresh token.
	TokenType TokenType `json:"token_type"`
}

// IsAccessToken returns true if this is an access token.
func (c *Claims) IsAccessToken() bool {
	return c.TokenType == TokenTypeAccess
}

// IsRefreshToken returns true if this is a refresh token.
func (c *Claims) IsRefreshToken() bool {
	return c.TokenType == TokenTypeRefresh
}
