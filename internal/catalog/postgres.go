package catalog

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/safar/teebay/internal/models"
	"github.com/safar/teebay/internal/store"
)

type PostgresRepo struct {
	db *sqlx.DB
}

func NewPostgresRepo(db *sqlx.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return store.GetProduct(ctx, r.db, id)
}

func (r *PostgresRepo) ListProductsByUser(ctx context.Context, userID int64) ([]models.Product, error) {
	return store.ListProductsByUser(ctx, r.db, userID)
}

func (r *PostgresRepo) ListAvailableProducts(ctx context.Context) ([]models.Product, error) {
	return store.ListAvailableProducts(ctx, r.db)
}

func (r *PostgresRepo) UpdateProduct(ctx context.Context, id int64, patch store.ProductPatch) (*models.Product, error) {
	return store.UpdateProduct(ctx, r.db, id, patch)
}

func (r *PostgresRepo) SoftDeleteProduct(ctx context.Context, id int64) error {
	return store.SoftDeleteProduct(ctx, r.db, id)
}

func (r *PostgresRepo) ListSalesByProduct(ctx context.Context, productID int64) ([]models.Sale, error) {
	return store.ListSalesByProduct(ctx, r.db, productID)
}

func (r *PostgresRepo) ListRentalsByProduct(ctx context.Context, productID int64) ([]models.Rental, error) {
	return store.ListRentalsByProduct(ctx, r.db, productID)
}
