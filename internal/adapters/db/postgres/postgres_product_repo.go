package postgres

import (
	"context"
	"errors"

	customErrors "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/catalog/model"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/catalog/repo"
	"gorm.io/gorm"
)

type PostgresProductRepo struct {
	db *gorm.DB
}

func NewPostgresProductRepo(db *gorm.DB) *PostgresProductRepo {
	return &PostgresProductRepo{db: db}
}

func (p *PostgresProductRepo) Transaction(ctx context.Context, fn func(tx repo.ProductRepo) error) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresProductRepo{db: tx})
	})
}

func (p *PostgresProductRepo) CreateProduct(ctx context.Context, prod *model.Product) error {
	if err := p.db.WithContext(ctx).Create(prod).Error; err != nil {
		return customErrors.WrapInternal(err, "CreateProduct")
	}
	return nil
}

func (p *PostgresProductRepo) UpdateProduct(ctx context.Context, prod model.Product) error {
	res := p.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", prod.ID).
		Updates(map[string]any{
			"product_name": prod.Name,
			"price":        prod.Price,
			"description":  prod.Description,
			"category":     prod.Category,
			"available":    prod.Available,
		})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "UpdateProduct")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *PostgresProductRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := p.db.WithContext(ctx).Where("product_id = ?", id).Delete(&model.Product{})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteProduct")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *PostgresProductRepo) GetProduct(ctx context.Context, id uint) (model.Product, error) {
	var prod model.Product
	res := p.db.WithContext(ctx).Where("product_id = ?", id).First(&prod)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Product{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Product{}, customErrors.WrapInternal(err, "GetProduct")
	}
	return prod, nil
}

func (p *PostgresProductRepo) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := p.db.WithContext(ctx).Order("product_id").Find(&out).Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListProducts")
	}
	return out, nil
}

func (p *PostgresProductRepo) ListAvailable(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := p.db.WithContext(ctx).
		Where("available = ?", true).
		Order("category").Order("product_id").
		Find(&out).Error
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListAvailable")
	}
	return out, nil
}

func (p *PostgresProductRepo) AppendLog(ctx context.Context, e *model.ChangeLogEntry) error {
	if err := p.db.WithContext(ctx).Create(e).Error; err != nil {
		return customErrors.WrapInternal(err, "AppendLog")
	}
	return nil
}

func (p *PostgresProductRepo) ListLog(ctx context.Context) ([]model.ChangeLogEntry, error) {
	var out []model.ChangeLogEntry
	if err := p.db.WithContext(ctx).Order("id_log desc").Find(&out).Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListLog")
	}
	return out, nil
}
