package account

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

func (r *PostgresRepo) CreateUser(ctx context.Context, p store.CreateUserParams) (*models.User, error) {
	return store.CreateUser(ctx, r.db, p)
}

func (r *PostgresRepo) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return store.GetUser(ctx, r.db, id)
}

func (r *PostgresRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return store.GetUserByEmail(ctx, r.db, email)
}

func (r *PostgresRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	return store.ListUsers(ctx, r.db)
}
