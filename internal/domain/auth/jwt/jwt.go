package jwt

import (
	"time"

	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/model"
	"github.com/golang-jwt/jwt/v5"
)

// Purposes name the token classes. Each one signs with its own derived key.
const (
	PurposeVerify  = "verify"
	PurposeAccess  = string(model.ClassAccess)
	PurposeRefresh = string(model.ClassRefresh)
)

type Claims[T any] struct {
	jwt.RegisteredClaims
	Type string `json:"typ"`
	Data T      `json:"dat"`
}

type EmailClaims = Claims[string]

type IdentityClaims = Claims[model.Identity]

// TokenCodec signs and verifies time-limited tokens. Decoding reports
// errors.ErrTokenTampered for a bad signature or wrong purpose and
// errors.ErrTokenExpired when the token is older than maxAge.
type TokenCodec interface {
	EncodeEmail(email string) (string, error)
	DecodeEmail(raw string, maxAge time.Duration) (string, error)
	EncodeIdentity(id model.Identity, class model.TokenClass) (token string, exp time.Time, err error)
	DecodeIdentity(raw string, class model.TokenClass) (model.Identity, error)
}
