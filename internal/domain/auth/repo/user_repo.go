package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/model"
	"github.com/google/uuid"
)

type UserRepo interface {
	// CreateUser returns errors.ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u model.User) (uuid.UUID, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)

	// MarkVerified flips verified false→true in a single conditional write.
	// It returns errors.ErrAlreadyVerified when the flag was already set and
	// errors.ErrNotFound when no user has that email.
	MarkVerified(ctx context.Context, email string) error
}
