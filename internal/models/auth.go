package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse returns the issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// RegisterCredentialRequest is the payload for creating a login account.
type RegisterCredentialRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=4"`
}

// CredentialInfo is returned after account registration.
type CredentialInfo struct {
	Username string `json:"username"`
}

// JWTClaims is the access token payload. Only the registered subject claim is
// contracted; it carries the username of the authenticated credential.
type JWTClaims struct {
	jwt.RegisteredClaims
}
