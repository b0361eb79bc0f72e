package booking

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/safar/teebay/internal/database"
	"github.com/safar/teebay/internal/models"
	"github.com/safar/teebay/internal/store"
	"github.com/shopspring/decimal"
)

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(Tx) error) error {
	return database.WithTransaction(ctx, s.db, database.DefaultTxOptions(), func(tx *sqlx.Tx) error {
		return fn(postgresTx{tx: tx})
	})
}

func (s *PostgresStore) ListSalesByBuyer(ctx context.Context, buyerID int64) ([]models.Sale, error) {
	return store.ListSalesByBuyer(ctx, s.db, buyerID)
}

func (s *PostgresStore) ListSalesBySeller(ctx context.Context, sellerID int64) ([]models.Sale, error) {
	return store.ListSalesBySeller(ctx, s.db, sellerID)
}

func (s *PostgresStore) ListRentalsByLender(ctx context.Context, lenderID int64) ([]models.Rental, error) {
	return store.ListRentalsByLender(ctx, s.db, lenderID)
}

func (s *PostgresStore) ListRentalsByBorrower(ctx context.Context, borrowerID int64) ([]models.Rental, error) {
	return store.ListRentalsByBorrower(ctx, s.db, borrowerID)
}

type postgresTx struct {
	tx *sqlx.Tx
}

func (t postgresTx) LockProduct(ctx context.Context, id int64) (*models.Product, error) {
	return store.LockProduct(ctx, t.tx, id)
}

func (t postgresTx) ListRentalsByProduct(ctx context.Context, productID int64) ([]models.Rental, error) {
	return store.ListRentalsByProduct(ctx, t.tx, productID)
}

func (t postgresTx) CreateSale(ctx context.Context, productID, buyerID, sellerID int64, price decimal.Decimal) (*models.Sale, error) {
	return store.CreateSale(ctx, t.tx, productID, buyerID, sellerID, price)
}

func (t postgresTx) MarkProductSold(ctx context.Context, id int64) error {
	return store.MarkProductSold(ctx, t.tx, id)
}

func (t postgresTx) CreateRental(ctx context.Context, p store.CreateRentalParams) (*models.Rental, error) {
	return store.CreateRental(ctx, t.tx, p)
}
