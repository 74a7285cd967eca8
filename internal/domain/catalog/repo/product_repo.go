package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/catalog/model"
)

type ProductRepo interface {
	// Transaction runs fn against a repo bound to one database transaction.
	// Returning an error from fn rolls every write back.
	Transaction(ctx context.Context, fn func(tx ProductRepo) error) error

	CreateProduct(ctx context.Context, p *model.Product) error

	// UpdateProduct overwrites every column of p. It returns errors.ErrNotFound
	// when no row has p.ID.
	UpdateProduct(ctx context.Context, p model.Product) error

	DeleteProduct(ctx context.Context, id uint) error

	GetProduct(ctx context.Context, id uint) (model.Product, error)

	ListProducts(ctx context.Context) ([]model.Product, error)

	ListAvailable(ctx context.Context) ([]model.Product, error)

	AppendLog(ctx context.Context, e *model.ChangeLogEntry) error

	// ListLog returns entries newest first.
	ListLog(ctx context.Context) ([]model.ChangeLogEntry, error)
}

// MenuCache stores the public menu between catalog mutations. Get reports the
// cache generation it read; Set stores items under that generation only, so a
// list loaded before an Invalidate is never served after it.
type MenuCache interface {
	Get(ctx context.Context) (items []model.MenuItem, generation int64, ok bool, err error)
	Set(ctx context.Context, generation int64, items []model.MenuItem) error
	Invalidate(ctx context.Context) error
}
