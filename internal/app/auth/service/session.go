package service

import (
	"context"
	"time"

	"github.com/Miraines/MoonyAndStarry/menu-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/model"
	lg "github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/log"
)

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(dto.Describe(err))
	}

	email, err := a.normalizeEmail(in.Email)
	if err != nil {
		return model.TokenPair{}, err
	}

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	switch {
	case customErrors.IsNotFound(err):
		return model.TokenPair{}, customErrors.ErrNotFound
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	if !a.hasher.Verify(in.Password, user.PasswordHash) {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	if !user.Verified {
		if err := a.sendVerification(ctx, user.Email); err != nil {
			return model.TokenPair{}, err
		}
		a.log.Info("login of unverified account, verification mail re-sent", lg.Email(user.Email))
		return model.TokenPair{}, customErrors.ErrNotVerified
	}

	return a.issueTokens(model.Identity{ID: user.ID, Name: user.Name})
}

// Refresh mints a new pair from a refresh-class token. The account is not
// re-read: a pair stays usable until it expires.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	id, err := a.Authorize(ctx, refreshToken, model.ClassRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}
	return a.issueTokens(id)
}

func (a *authService) issueTokens(id model.Identity) (model.TokenPair, error) {
	at, atExp, err := a.codec.EncodeIdentity(id, model.ClassAccess)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "EncodeAccessToken")
	}
	rt, rtExp, err := a.codec.EncodeIdentity(id, model.ClassRefresh)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "EncodeRefreshToken")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:  at,
		RefreshToken: rt,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserId:       id.ID,
	}, nil
}
