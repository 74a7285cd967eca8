package service

import (
	"context"
	"crypto/subtle"
	"net/url"
	"strings"

	"github.com/Miraines/MoonyAndStarry/menu-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/app/auth/password"
	customErrors "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/model"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/notify"
	repo "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/repo"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/config"
	lg "github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Accounts drives the unverified → verified lifecycle of an account.
type Accounts interface {
	Register(context.Context, dto.RegisterDTO) (uuid.UUID, error)
	RequestVerification(context.Context, dto.SendMailDTO) error
	ConfirmVerification(ctx context.Context, token string) error
}

// Sessions authenticates credentials and issues access/refresh pairs.
type Sessions interface {
	Login(context.Context, dto.LoginDTO) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
}

// Gate turns an inbound session token into the caller's identity.
type Gate interface {
	Authorize(ctx context.Context, token string, class model.TokenClass) (model.Identity, error)
}

type Service interface {
	Accounts
	Sessions
	Gate
}

type authService struct {
	userRepo repo.UserRepo
	codec    jwt.TokenCodec
	hasher   password.Hasher
	notifier notify.Notifier
	cfg      *config.Config
	v        *validator.Validate
	log      *zap.Logger
}

func New(
	ur repo.UserRepo,
	codec jwt.TokenCodec,
	hasher password.Hasher,
	notifier notify.Notifier,
	cfg *config.Config,
	v *validator.Validate,
	log *zap.Logger,
) Service {
	return &authService{
		userRepo: ur, codec: codec, hasher: hasher, notifier: notifier, cfg: cfg, v: v, log: log,
	}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (uuid.UUID, error) {
	if err := a.v.Struct(in); err != nil {
		return uuid.Nil, customErrors.NewInvalidArgument(dto.Describe(err))
	}

	if subtle.ConstantTimeCompare([]byte(in.Key), []byte(a.cfg.RegistrationKey)) != 1 {
		return uuid.Nil, customErrors.ErrInvalidRegistrationKey
	}

	email, err := a.normalizeEmail(in.Email)
	if err != nil {
		return uuid.Nil, err
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return uuid.Nil, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: passwordHash,
	}
	id, err := a.userRepo.CreateUser(ctx, user)
	if err != nil {
		if customErrors.IsAlreadyExists(err) {
			return uuid.Nil, customErrors.ErrAlreadyExists
		}
		return uuid.Nil, customErrors.WrapInternal(err, "Register")
	}

	// The account is committed; a mail failure here is reported by the log only.
	if err := a.sendVerification(ctx, email); err != nil {
		a.log.Warn("verification mail after register failed", lg.Email(email), zap.Error(err))
	}

	return id, nil
}

func (a *authService) RequestVerification(ctx context.Context, in dto.SendMailDTO) error {
	if err := a.v.Struct(in); err != nil {
		return customErrors.NewInvalidArgument(dto.Describe(err))
	}

	email, err := a.normalizeEmail(in.Email)
	if err != nil {
		return err
	}

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	switch {
	case customErrors.IsNotFound(err):
		return customErrors.ErrNotFound
	case err != nil:
		return customErrors.WrapInternal(err, "RequestVerification")
	}

	if user.Verified {
		return customErrors.ErrAlreadyVerified
	}

	return a.sendVerification(ctx, user.Email)
}

func (a *authService) ConfirmVerification(ctx context.Context, token string) error {
	email, err := a.codec.DecodeEmail(token, a.cfg.VerificationTokenTTL)
	if err != nil {
		if customErrors.IsInvalidToken(err) {
			return err
		}
		return customErrors.WrapInternal(err, "ConfirmVerification")
	}

	err = a.userRepo.MarkVerified(ctx, strings.ToLower(email))
	switch {
	case err == nil:
		a.log.Info("account verified", lg.Email(email))
		return nil
	case customErrors.IsAlreadyVerified(err):
		return customErrors.ErrAlreadyVerified
	case customErrors.IsNotFound(err):
		// a correctly signed token for an account that no longer exists
		a.log.Warn("verification for unknown account", lg.Email(email))
		return customErrors.ErrTokenTampered
	default:
		return customErrors.WrapInternal(err, "ConfirmVerification")
	}
}

// sendVerification mints a fresh token for email and hands the link to the
// notifier. Transport failures come back as ErrNotifierFailed.
func (a *authService) sendVerification(ctx context.Context, email string) error {
	token, err := a.codec.EncodeEmail(email)
	if err != nil {
		return customErrors.WrapInternal(err, "EncodeEmail")
	}

	link := a.cfg.PublicBaseURL + "/mail/validate/" + url.PathEscape(token)
	if err := a.notifier.SendVerificationEmail(ctx, email, link); err != nil {
		return customErrors.WrapNotifier(err, "SendVerificationEmail")
	}
	return nil
}

func (a *authService) normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if err := a.v.Var(email, "required,email"); err != nil {
		return "", customErrors.ErrInvalidEmail
	}
	return email, nil
}
