package model

import "github.com/google/uuid"

// TokenManager validates access tokens.
type TokenManager interface {
	ParseAccessToken(token string) (AccessClaims, error)
}

// AccessClaims are the identity facts carried by an access token.
type AccessClaims struct {
	UserID uuid.UUID
	Role   Role
}
