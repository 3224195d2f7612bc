package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vantagecrm/crm-backend/internal/data/repos"
	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/platform/apierr"
	"github.com/vantagecrm/crm-backend/internal/platform/dbctx"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
)

type ProductService interface {
	List(dbc dbctx.Context) ([]*types.Product, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Product, error)
	GetByCode(dbc dbctx.Context, code string) (*types.Product, error)
	SearchByName(dbc dbctx.Context, name string) ([]*types.Product, error)
	ListByCategory(dbc dbctx.Context, category string) ([]*types.Product, error)
	ListByStatus(dbc dbctx.Context, status string) ([]*types.Product, error)
	ListUnderPrice(dbc dbctx.Context, maxPrice decimal.Decimal) ([]*types.Product, error)
	ListInPriceRange(dbc dbctx.Context, minPrice, maxPrice decimal.Decimal) ([]*types.Product, error)
	Create(dbc dbctx.Context, product *types.Product) (*types.Product, error)
	Update(dbc dbctx.Context, id uuid.UUID, product *types.Product) (*types.Product, error)
	UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string) (*types.Product, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type productService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
}

func NewProductService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo) ProductService {
	serviceLog := log.With("service", "ProductService")
	return &productService{
		db:          db,
		log:         serviceLog,
		productRepo: productRepo,
	}
}

func (ps *productService) List(dbc dbctx.Context) ([]*types.Product, error) {
	return ps.productRepo.List(dbc.Ctx, dbc.Tx)
}

func (ps *productService) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Product, error) {
	product, err := ps.productRepo.GetByID(dbc.Ctx, dbc.Tx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch product: %w", err)
	}
	if product == nil {
		return nil, apierr.NotFound(fmt.Errorf("product %s does not exist", id))
	}
	return product, nil
}

func (ps *productService) GetByCode(dbc dbctx.Context, code string) (*types.Product, error) {
	product, err := ps.productRepo.GetByCode(dbc.Ctx, dbc.Tx, code)
	if err != nil {
		return nil, fmt.Errorf("fetch product by code: %w", err)
	}
	if product == nil {
		return nil, apierr.NotFound(fmt.Errorf("no product with code %q", code))
	}
	return product, nil
}

func (ps *productService) SearchByName(dbc dbctx.Context, name string) ([]*types.Product, error) {
	return ps.productRepo.SearchByName(dbc.Ctx, dbc.Tx, name)
}

func (ps *productService) ListByCategory(dbc dbctx.Context, category string) ([]*types.Product, error) {
	return ps.productRepo.ListByCategory(dbc.Ctx, dbc.Tx, category)
}

func (ps *productService) ListByStatus(dbc dbctx.Context, status string) ([]*types.Product, error) {
	return ps.productRepo.ListByStatus(dbc.Ctx, dbc.Tx, status)
}

func (ps *productService) ListUnderPrice(dbc dbctx.Context, maxPrice decimal.Decimal) ([]*types.Product, error) {
	return ps.productRepo.ListPriceLessThan(dbc.Ctx, dbc.Tx, maxPrice)
}

func (ps *productService) ListInPriceRange(dbc dbctx.Context, minPrice, maxPrice decimal.Decimal) ([]*types.Product, error) {
	return ps.productRepo.ListPriceBetween(dbc.Ctx, dbc.Tx, minPrice, maxPrice)
}

func (ps *productService) Create(dbc dbctx.Context, product *types.Product) (*types.Product, error) {
	if product.ID != uuid.Nil {
		return nil, apierr.IdentifierConflict(fmt.Errorf("create payload must not carry an id"))
	}

	var created *types.Product
	err := runInWriteTx(ps.db, dbc, func(tx *gorm.DB) error {
		taken, err := ps.productRepo.CodeExists(dbc.Ctx, tx, product.Code)
		if err != nil {
			return fmt.Errorf("check product code: %w", err)
		}
		if taken {
			return apierr.DuplicateKey(fmt.Errorf("product code %q is taken", product.Code))
		}

		now := time.Now().UTC()
		product.ID = uuid.New()
		product.CreatedAt = now
		product.UpdatedAt = now

		created, err = ps.productRepo.Create(dbc.Ctx, tx, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update re-checks code uniqueness only when the code value actually changed,
// comparing by value case-insensitively.
func (ps *productService) Update(dbc dbctx.Context, id uuid.UUID, product *types.Product) (*types.Product, error) {
	var updated *types.Product
	err := runInWriteTx(ps.db, dbc, func(tx *gorm.DB) error {
		existing, err := ps.productRepo.GetByID(dbc.Ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch product: %w", err)
		}
		if existing == nil {
			return apierr.NotFound(fmt.Errorf("product %s does not exist", id))
		}

		if !strings.EqualFold(existing.Code, product.Code) {
			taken, err := ps.productRepo.CodeExists(dbc.Ctx, tx, product.Code)
			if err != nil {
				return fmt.Errorf("check product code: %w", err)
			}
			if taken {
				return apierr.DuplicateKey(fmt.Errorf("product code %q is taken", product.Code))
			}
		}

		product.ID = id
		product.CreatedAt = existing.CreatedAt
		product.UpdatedAt = time.Now().UTC()

		updated, err = ps.productRepo.Save(dbc.Ctx, tx, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateStatus overwrites the status unconditionally; there is no enumerated
// transition table.
func (ps *productService) UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string) (*types.Product, error) {
	var updated *types.Product
	err := runInWriteTx(ps.db, dbc, func(tx *gorm.DB) error {
		product, err := ps.productRepo.GetByID(dbc.Ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch product: %w", err)
		}
		if product == nil {
			return apierr.NotFound(fmt.Errorf("product %s does not exist", id))
		}

		product.Status = status
		product.UpdatedAt = time.Now().UTC()

		updated, err = ps.productRepo.Save(dbc.Ctx, tx, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (ps *productService) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return runInWriteTx(ps.db, dbc, func(tx *gorm.DB) error {
		existing, err := ps.productRepo.GetByID(dbc.Ctx, tx, id)
		if err != nil {
			return fmt.Errorf("fetch product: %w", err)
		}
		if existing == nil {
			return apierr.NotFound(fmt.Errorf("product %s does not exist", id))
		}
		return ps.productRepo.Delete(dbc.Ctx, tx, id)
	})
}
