package draft

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/safar/teebay/internal/database"
	"github.com/safar/teebay/internal/models"
	"github.com/safar/teebay/internal/store"
)

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetDraft(ctx context.Context, userID int64) (*models.DraftSession, error) {
	return store.GetDraft(ctx, s.db, userID)
}

func (s *PostgresStore) UpsertDraft(ctx context.Context, userID int64, step int, data models.ProductFormData) (*models.DraftSession, error) {
	return store.UpsertDraft(ctx, s.db, userID, step, data)
}

func (s *PostgresStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return store.GetProduct(ctx, s.db, id)
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(Tx) error) error {
	return database.WithTransaction(ctx, s.db, database.DefaultTxOptions(), func(tx *sqlx.Tx) error {
		return fn(postgresTx{tx: tx})
	})
}

type postgresTx struct {
	tx *sqlx.Tx
}

func (t postgresTx) GetDraft(ctx context.Context, userID int64) (*models.DraftSession, error) {
	return store.GetDraft(ctx, t.tx, userID)
}

func (t postgresTx) CreateProduct(ctx context.Context, p store.CreateProductParams) (*models.Product, error) {
	return store.CreateProduct(ctx, t.tx, p)
}

func (t postgresTx) DeleteDraft(ctx context.Context, userID int64) error {
	return store.DeleteDraft(ctx, t.tx, userID)
}
