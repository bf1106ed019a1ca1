package auth

import (
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   enums.ActorRole
}

// AccessTokenClaims represents the typed JWT issued to clients. The API
// trusts only the identity assertion; the current delivery-man record is
// re-fetched on every request.
type AccessTokenClaims struct {
	UserID uuid.UUID       `json:"user_id"`
	Role   enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}
