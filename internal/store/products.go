package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/safar/teebay/internal/database"
	"github.com/safar/teebay/internal/models"
	"github.com/shopspring/decimal"
)

const productColumns = `id, user_id, title, description, price, rent_price, rent_period, categories,
	is_available, is_deleted, created_at, updated_at, version`

// listable is the SQL form of models.Product.Listable. Every query that
// lists bookable products filters on it.
const listable = `is_available AND NOT is_deleted`

type productRow struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	RentPrice   decimal.Decimal `db:"rent_price"`
	RentPeriod  string          `db:"rent_period"`
	Categories  pq.StringArray  `db:"categories"`
	IsAvailable bool            `db:"is_available"`
	IsDeleted   bool            `db:"is_deleted"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	Version     int             `db:"version"`
}

func (r *productRow) model() *models.Product {
	return &models.Product{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		RentPrice:   r.RentPrice,
		RentPeriod:  models.RentPeriod(r.RentPeriod),
		Categories:  models.CategoriesFromStrings(r.Categories),
		IsAvailable: r.IsAvailable,
		IsDeleted:   r.IsDeleted,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Version:     r.Version,
	}
}

type CreateProductParams struct {
	UserID      int64
	Title       string
	Description string
	Price       decimal.Decimal
	RentPrice   decimal.Decimal
	RentPeriod  models.RentPeriod
	Categories  []models.Category
}

func CreateProduct(ctx context.Context, q sqlx.ExtContext, p CreateProductParams) (*models.Product, error) {
	var row productRow

	query := `
		INSERT INTO products (user_id, title, description, price, rent_price, rent_period, categories,
		                      is_available, is_deleted, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, FALSE, NOW(), NOW(), 1)
		RETURNING ` + productColumns

	err := sqlx.GetContext(ctx, q, &row, query,
		p.UserID, p.Title, p.Description, p.Price, p.RentPrice, string(p.RentPeriod),
		pq.Array(models.CategoryStrings(p.Categories)))
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return row.model(), nil
}

func GetProduct(ctx context.Context, q sqlx.ExtContext, id int64) (*models.Product, error) {
	return getProduct(ctx, q, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// LockProduct reads the product and holds its row lock until the enclosing
// transaction ends.
func LockProduct(ctx context.Context, tx *sqlx.Tx, id int64) (*models.Product, error) {
	return getProduct(ctx, tx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func getProduct(ctx context.Context, q sqlx.ExtContext, query string, id int64) (*models.Product, error) {
	var row productRow

	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return row.model(), nil
}

func ListProductsByUser(ctx context.Context, q sqlx.ExtContext, userID int64) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE user_id = $1 AND NOT is_deleted
		ORDER BY created_at DESC, id DESC`

	return listProducts(ctx, q, query, userID)
}

func ListAvailableProducts(ctx context.Context, q sqlx.ExtContext) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ` + listable + `
		ORDER BY created_at DESC, id DESC`

	return listProducts(ctx, q, query)
}

func listProducts(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) ([]models.Product, error) {
	var rows []productRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]models.Product, 0, len(rows))
	for i := range rows {
		products = append(products, *rows[i].model())
	}
	return products, nil
}

// ProductPatch holds the fields an owner may edit. Nil fields are left as is.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	RentPrice   *decimal.Decimal
	RentPeriod  *models.RentPeriod
	Categories  []models.Category
}

func UpdateProduct(ctx context.Context, q sqlx.ExtContext, id int64, patch ProductPatch) (*models.Product, error) {
	var row productRow

	var rentPeriod *string
	if patch.RentPeriod != nil {
		s := string(*patch.RentPeriod)
		rentPeriod = &s
	}
	var categories interface{}
	if patch.Categories != nil {
		categories = pq.Array(models.CategoryStrings(patch.Categories))
	}

	query := `
		UPDATE products
		SET title       = COALESCE($2::text, title),
		    description = COALESCE($3::text, description),
		    price       = COALESCE($4::numeric, price),
		    rent_price  = COALESCE($5::numeric, rent_price),
		    rent_period = COALESCE($6::text, rent_period),
		    categories  = COALESCE($7::text[], categories),
		    updated_at  = NOW(),
		    version     = version + 1
		WHERE id = $1 AND NOT is_deleted
		RETURNING ` + productColumns

	err := sqlx.GetContext(ctx, q, &row, query,
		id, patch.Title, patch.Description, patch.Price, patch.RentPrice, rentPeriod, categories)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	return row.model(), nil
}

// SoftDeleteProduct tombstones the product and withdraws it from sale.
func SoftDeleteProduct(ctx context.Context, q sqlx.ExtContext, id int64) error {
	result, err := q.ExecContext(ctx,
		`UPDATE products
		 SET is_deleted = TRUE,
		     is_available = FALSE,
		     updated_at = NOW(),
		     version = version + 1
		 WHERE id = $1
		   AND NOT is_deleted`,
		id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrProductNotFound
	}

	return nil
}

// MarkProductSold flips availability off. It only succeeds while the product
// is still listable, so a second seller of the same row gets
// database.ErrProductUnavailable.
func MarkProductSold(ctx context.Context, q sqlx.ExtContext, id int64) error {
	result, err := q.ExecContext(ctx,
		`UPDATE products
		 SET is_available = FALSE,
		     updated_at = NOW(),
		     version = version + 1
		 WHERE id = $1
		   AND `+listable,
		id)
	if err != nil {
		return fmt.Errorf("mark product sold: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrProductUnavailable
	}

	return nil
}
