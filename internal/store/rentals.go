package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/safar/teebay/internal/models"
	"github.com/shopspring/decimal"
)

const rentalColumns = `id, product_id, lender_id, borrower_id, from_date, to_date, total_price, created_at`

type CreateRentalParams struct {
	ProductID  int64
	LenderID   int64
	BorrowerID int64
	FromDate   time.Time
	ToDate     time.Time
	TotalPrice decimal.Decimal
}

func CreateRental(ctx context.Context, q sqlx.ExtContext, p CreateRentalParams) (*models.Rental, error) {
	rental := &models.Rental{}

	query := `
		INSERT INTO rentals (product_id, lender_id, borrower_id, from_date, to_date, total_price, created_at)
		VALUES ($1, $2, $3, $4::date, $5::date, $6, NOW())
		RETURNING ` + rentalColumns

	err := sqlx.GetContext(ctx, q, rental, query,
		p.ProductID, p.LenderID, p.BorrowerID,
		p.FromDate.Format(models.DateLayout), p.ToDate.Format(models.DateLayout), p.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("create rental: %w", err)
	}

	return rental, nil
}

// ListRentalsByProduct returns the product's rentals ordered by start date.
func ListRentalsByProduct(ctx context.Context, q sqlx.ExtContext, productID int64) ([]models.Rental, error) {
	rentals := []models.Rental{}

	query := `
		SELECT ` + rentalColumns + `
		FROM rentals
		WHERE product_id = $1
		ORDER BY from_date, id`

	if err := sqlx.SelectContext(ctx, q, &rentals, query, productID); err != nil {
		return nil, fmt.Errorf("list product rentals: %w", err)
	}

	return rentals, nil
}

func ListRentalsByLender(ctx context.Context, q sqlx.ExtContext, lenderID int64) ([]models.Rental, error) {
	return listRentals(ctx, q, `WHERE lender_id = $1`, lenderID)
}

func ListRentalsByBorrower(ctx context.Context, q sqlx.ExtContext, borrowerID int64) ([]models.Rental, error) {
	return listRentals(ctx, q, `WHERE borrower_id = $1`, borrowerID)
}

func listRentals(ctx context.Context, q sqlx.ExtContext, where string, id int64) ([]models.Rental, error) {
	rentals := []models.Rental{}

	query := `SELECT ` + rentalColumns + ` FROM rentals ` + where + ` ORDER BY created_at DESC, id DESC`

	if err := sqlx.SelectContext(ctx, q, &rentals, query, id); err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}

	return rentals, nil
}
