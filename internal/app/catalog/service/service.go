package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Miraines/MoonyAndStarry/menu-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/errors"
	authModel "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/model"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/catalog/model"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/catalog/repo"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Service is the product catalog. Every mutation is recorded in the change
// log under the caller's identity.
type Service interface {
	List(ctx context.Context, in dto.ListProductsDTO) ([]model.Product, error)
	Get(ctx context.Context, id uint) (model.Product, error)
	Add(ctx context.Context, actor authModel.Identity, in dto.ProductDTO) (model.Product, error)
	Update(ctx context.Context, actor authModel.Identity, in dto.UpdateProductDTO) error
	Delete(ctx context.Context, actor authModel.Identity, in dto.DeleteProductDTO) error
	ChangeLog(ctx context.Context) ([]model.ChangeLogEntry, error)
	Menu(ctx context.Context) ([]model.MenuItem, error)
}

type catalogService struct {
	products repo.ProductRepo
	cache    repo.MenuCache
	v        *validator.Validate
	log      *zap.Logger
	now      func() time.Time
}

func New(products repo.ProductRepo, cache repo.MenuCache, v *validator.Validate, log *zap.Logger) Service {
	return &catalogService{products: products, cache: cache, v: v, log: log, now: time.Now}
}

func (s *catalogService) List(ctx context.Context, in dto.ListProductsDTO) ([]model.Product, error) {
	if err := s.v.Struct(in); err != nil {
		return nil, customErrors.NewInvalidArgument(dto.Describe(err))
	}

	compare, ok := model.SortField(in.Order).Comparator()
	if !ok {
		return nil, customErrors.NewInvalidArgument(unsupportedOrder())
	}

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListProducts")
	}
	slices.SortStableFunc(products, compare)
	return products, nil
}

func (s *catalogService) Get(ctx context.Context, id uint) (model.Product, error) {
	p, err := s.products.GetProduct(ctx, id)
	switch {
	case customErrors.IsNotFound(err):
		return model.Product{}, customErrors.ErrNotFound
	case err != nil:
		return model.Product{}, customErrors.WrapInternal(err, "GetProduct")
	}
	return p, nil
}

func (s *catalogService) Add(ctx context.Context, actor authModel.Identity, in dto.ProductDTO) (model.Product, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Product{}, customErrors.NewInvalidArgument(dto.Describe(err))
	}

	p := productFrom(in)
	err := s.products.Transaction(ctx, func(tx repo.ProductRepo) error {
		if err := tx.CreateProduct(ctx, &p); err != nil {
			return err
		}
		return tx.AppendLog(ctx, s.entry(actor, "added", p.Name))
	})
	if err != nil {
		return model.Product{}, customErrors.WrapInternal(err, "AddProduct")
	}

	s.invalidate(ctx)
	s.log.Info("product added", zap.Uint("product_id", p.ID), zap.String("actor", actor.ID.String()))
	return p, nil
}

func (s *catalogService) Update(ctx context.Context, actor authModel.Identity, in dto.UpdateProductDTO) error {
	if err := s.v.Struct(in); err != nil {
		return customErrors.NewInvalidArgument(dto.Describe(err))
	}

	p := productFrom(in.ProductDTO)
	p.ID = *in.ID
	err := s.products.Transaction(ctx, func(tx repo.ProductRepo) error {
		if err := tx.UpdateProduct(ctx, p); err != nil {
			return err
		}
		return tx.AppendLog(ctx, s.entry(actor, "changed", p.Name))
	})
	switch {
	case customErrors.IsNotFound(err):
		return customErrors.ErrNotFound
	case err != nil:
		return customErrors.WrapInternal(err, "UpdateProduct")
	}

	s.invalidate(ctx)
	s.log.Info("product changed", zap.Uint("product_id", p.ID), zap.String("actor", actor.ID.String()))
	return nil
}

func (s *catalogService) Delete(ctx context.Context, actor authModel.Identity, in dto.DeleteProductDTO) error {
	if err := s.v.Struct(in); err != nil {
		return customErrors.NewInvalidArgument(dto.Describe(err))
	}

	id := *in.ID
	err := s.products.Transaction(ctx, func(tx repo.ProductRepo) error {
		p, err := tx.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteProduct(ctx, id); err != nil {
			return err
		}
		return tx.AppendLog(ctx, s.entry(actor, "deleted", p.Name))
	})
	switch {
	case customErrors.IsNotFound(err):
		return customErrors.ErrNotFound
	case err != nil:
		return customErrors.WrapInternal(err, "DeleteProduct")
	}

	s.invalidate(ctx)
	s.log.Info("product deleted", zap.Uint("product_id", id), zap.String("actor", actor.ID.String()))
	return nil
}

func (s *catalogService) ChangeLog(ctx context.Context) ([]model.ChangeLogEntry, error) {
	entries, err := s.products.ListLog(ctx)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListLog")
	}
	return entries, nil
}

// Menu serves the available products from the cache when it holds them.
// Cache errors degrade to a database read.
func (s *catalogService) Menu(ctx context.Context) ([]model.MenuItem, error) {
	cached, gen, ok, cacheErr := s.cache.Get(ctx)
	if cacheErr != nil {
		s.log.Warn("menu cache read failed", zap.Error(cacheErr))
	} else if ok {
		return cached, nil
	}

	products, err := s.products.ListAvailable(ctx)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListAvailable")
	}

	items := make([]model.MenuItem, 0, len(products))
	for _, p := range products {
		items = append(items, model.MenuItem{
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			Category:    p.Category,
		})
	}

	if cacheErr == nil {
		if err := s.cache.Set(ctx, gen, items); err != nil {
			s.log.Warn("menu cache write failed", zap.Error(err))
		}
	}
	return items, nil
}

func (s *catalogService) entry(actor authModel.Identity, verb, product string) *model.ChangeLogEntry {
	return &model.ChangeLogEntry{
		UserID: actor.ID,
		Log:    fmt.Sprintf("%s %s a product: %s", actor.Name, verb, product),
		Date:   s.now().UTC(),
	}
}

// invalidate runs after commit and never fails the caller.
func (s *catalogService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("menu cache invalidate failed", zap.Error(err))
	}
}

func productFrom(in dto.ProductDTO) model.Product {
	return model.Product{
		Name:        strings.TrimSpace(in.Name),
		Price:       *in.Price,
		Description: in.Description,
		Category:    in.Category,
		Available:   *in.Available,
	}
}

func unsupportedOrder() string {
	names := make([]string, len(model.SortFields))
	for i, f := range model.SortFields {
		names[i] = string(f)
	}
	return "value not supported. supported values: " + strings.Join(names, ", ")
}
