// Package catalog reads and edits listed products.
package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/safar/teebay/internal/apperr"
	"github.com/safar/teebay/internal/database"
	"github.com/safar/teebay/internal/models"
	"github.com/safar/teebay/internal/store"
	"github.com/safar/teebay/internal/validation"
	"github.com/shopspring/decimal"
)

type Repo interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProductsByUser(ctx context.Context, userID int64) ([]models.Product, error)
	ListAvailableProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch store.ProductPatch) (*models.Product, error)
	SoftDeleteProduct(ctx context.Context, id int64) error
	ListSalesByProduct(ctx context.Context, productID int64) ([]models.Sale, error)
	ListRentalsByProduct(ctx context.Context, productID int64) ([]models.Rental, error)
}

type Service struct {
	repo   Repo
	logger *slog.Logger
}

func NewService(repo Repo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Get returns the product, including tombstoned ones.
func (s *Service) Get(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if errors.Is(err, database.ErrProductNotFound) {
		return nil, apperr.NotFound("Product")
	}
	if err != nil {
		return nil, s.internal(ctx, "get product", err)
	}
	return p, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]models.Product, error) {
	products, err := s.repo.ListProductsByUser(ctx, userID)
	if err != nil {
		return nil, s.internal(ctx, "list user products", err)
	}
	return products, nil
}

func (s *Service) ListAvailable(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListAvailableProducts(ctx)
	if err != nil {
		return nil, s.internal(ctx, "list available products", err)
	}
	return products, nil
}

// Update applies the fields set in in. Only the owner may edit, and
// tombstoned products cannot be edited.
func (s *Service) Update(ctx context.Context, userID, id int64, in models.ProductFormData) (*models.Product, error) {
	if err := validation.Default().Struct(in); err != nil {
		return nil, err
	}

	if _, err := s.owned(ctx, userID, id, "update"); err != nil {
		return nil, err
	}

	p, err := s.repo.UpdateProduct(ctx, id, patchFrom(in))
	if errors.Is(err, database.ErrProductNotFound) {
		return nil, apperr.NotFound("Product")
	}
	if err != nil {
		return nil, s.internal(ctx, "update product", err)
	}

	s.logger.InfoContext(ctx, "product updated", "product_id", id, "user_id", userID, "version", p.Version)
	return p, nil
}

// Delete tombstones the product. Sales and rentals keep pointing at it.
func (s *Service) Delete(ctx context.Context, userID, id int64) (bool, error) {
	if _, err := s.owned(ctx, userID, id, "delete"); err != nil {
		return false, err
	}

	err := s.repo.SoftDeleteProduct(ctx, id)
	if errors.Is(err, database.ErrProductNotFound) {
		return false, apperr.NotFound("Product")
	}
	if err != nil {
		return false, s.internal(ctx, "delete product", err)
	}

	s.logger.InfoContext(ctx, "product deleted", "product_id", id, "user_id", userID)
	return true, nil
}

func (s *Service) Sales(ctx context.Context, productID int64) ([]models.Sale, error) {
	sales, err := s.repo.ListSalesByProduct(ctx, productID)
	if err != nil {
		return nil, s.internal(ctx, "list product sales", err)
	}
	return sales, nil
}

func (s *Service) Rentals(ctx context.Context, productID int64) ([]models.Rental, error) {
	rentals, err := s.repo.ListRentalsByProduct(ctx, productID)
	if err != nil {
		return nil, s.internal(ctx, "list product rentals", err)
	}
	return rentals, nil
}

func (s *Service) owned(ctx context.Context, userID, id int64, action string) (*models.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsDeleted {
		return nil, apperr.NotFound("Product")
	}
	if p.UserID != userID {
		return nil, apperr.Authorization("You can only " + action + " your own products")
	}
	return p, nil
}

func patchFrom(in models.ProductFormData) store.ProductPatch {
	patch := store.ProductPatch{
		Title:       in.Title,
		Description: in.Description,
		RentPeriod:  in.RentPeriod,
		Categories:  in.Categories,
	}
	if in.Price != nil {
		d := decimal.NewFromFloat(*in.Price).Round(2)
		patch.Price = &d
	}
	if in.RentPrice != nil {
		d := decimal.NewFromFloat(*in.RentPrice).Round(2)
		patch.RentPrice = &d
	}
	return patch
}

func (s *Service) internal(ctx context.Context, op string, err error) error {
	s.logger.ErrorContext(ctx, op+" failed", "error", err)
	return apperr.Internal(err)
}
