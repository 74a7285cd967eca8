package service

import (
	"context"

	customErrors "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/model"
	"go.uber.org/zap"
)

// Authorize never tells the caller why a token was refused; the reason is
// only logged.
func (a *authService) Authorize(_ context.Context, token string, class model.TokenClass) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, customErrors.ErrUnauthorized
	}

	id, err := a.codec.DecodeIdentity(token, class)
	if err != nil {
		reason := "tampered"
		if customErrors.IsTokenExpired(err) {
			reason = "expired"
		}
		a.log.Debug("token rejected",
			zap.String("class", string(class)),
			zap.String("reason", reason),
		)
		return model.Identity{}, customErrors.ErrUnauthorized
	}
	return id, nil
}
