package jwt

import (
	"crypto/sha256"
	"errors"
	"io"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/errors"
	jwt2 "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/model"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

const keyLength = 32

type JwtUtilImpl struct {
	keys       map[string][]byte
	verifyTTL  time.Duration
	accessTTL  time.Duration
	refreshTTL time.Duration
	parser     *jwt.Parser
	now        func() time.Time
}

var _ jwt2.TokenCodec = (*JwtUtilImpl)(nil)

func NewJWTUtil(cfg *config.Config) (*JwtUtilImpl, error) {
	if cfg.SecretKey == "" {
		return nil, customErrors.WrapInternal(errors.New("empty secret"), "NewJWTUtil")
	}

	keys := make(map[string][]byte, 3)
	for _, purpose := range []string{jwt2.PurposeVerify, jwt2.PurposeAccess, jwt2.PurposeRefresh} {
		key, err := deriveKey(cfg.SecretKey, cfg.SecuritySalt, purpose)
		if err != nil {
			return nil, customErrors.WrapInternal(err, "derive "+purpose+" key")
		}
		keys[purpose] = key
	}

	return &JwtUtilImpl{
		keys:       keys,
		verifyTTL:  cfg.VerificationTokenTTL,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithStrictDecoding(),
			// age is checked against the caller's max age, not the embedded exp
			jwt.WithoutClaimsValidation(),
		),
		now: time.Now,
	}, nil
}

func deriveKey(secret, salt, purpose string) ([]byte, error) {
	key := make([]byte, keyLength)
	r := hkdf.New(sha256.New, []byte(secret), []byte(salt), []byte("menu-service/"+purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (j *JwtUtilImpl) EncodeEmail(email string) (string, error) {
	token, _, err := encode(j, jwt2.PurposeVerify, email, j.verifyTTL)
	return token, err
}

func (j *JwtUtilImpl) DecodeEmail(raw string, maxAge time.Duration) (string, error) {
	return decode[string](j, raw, jwt2.PurposeVerify, maxAge)
}

func (j *JwtUtilImpl) EncodeIdentity(id model.Identity, class model.TokenClass) (string, time.Time, error) {
	ttl, err := j.ttlFor(class)
	if err != nil {
		return "", time.Time{}, err
	}
	return encode(j, string(class), id, ttl)
}

func (j *JwtUtilImpl) DecodeIdentity(raw string, class model.TokenClass) (model.Identity, error) {
	ttl, err := j.ttlFor(class)
	if err != nil {
		return model.Identity{}, err
	}
	return decode[model.Identity](j, raw, string(class), ttl)
}

func (j *JwtUtilImpl) ttlFor(class model.TokenClass) (time.Duration, error) {
	switch class {
	case model.ClassAccess:
		return j.accessTTL, nil
	case model.ClassRefresh:
		return j.refreshTTL, nil
	default:
		return 0, customErrors.NewInvalidArgument("unknown token class " + string(class))
	}
}

func encode[T any](j *JwtUtilImpl, purpose string, data T, ttl time.Duration) (string, time.Time, error) {
	now := j.now()

	claims := jwt2.Claims[T]{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Type: purpose,
		Data: data,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.keys[purpose])
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign "+purpose+" token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

// decode checks the signature before the age, so a forged token is always
// reported as tampered even when its claimed issue time is old.
func decode[T any](j *JwtUtilImpl, raw, purpose string, maxAge time.Duration) (T, error) {
	var zero T

	claims := &jwt2.Claims[T]{}
	token, err := j.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return j.keys[purpose], nil
	})
	if err != nil || !token.Valid {
		return zero, customErrors.ErrTokenTampered
	}

	if claims.Type != purpose || claims.IssuedAt == nil {
		return zero, customErrors.ErrTokenTampered
	}

	if j.now().Sub(claims.IssuedAt.Time) > maxAge {
		return zero, customErrors.ErrTokenExpired
	}

	return claims.Data, nil
}
