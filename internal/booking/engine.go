// Package booking buys and rents products. Every booking locks the product
// row first, so purchases and rental overlap checks on one product run one
// at a time.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/safar/teebay/internal/apperr"
	"github.com/safar/teebay/internal/database"
	"github.com/safar/teebay/internal/models"
	"github.com/safar/teebay/internal/store"
	"github.com/shopspring/decimal"
)

type Store interface {
	WithinTx(ctx context.Context, fn func(Tx) error) error
	ListSalesByBuyer(ctx context.Context, buyerID int64) ([]models.Sale, error)
	ListSalesBySeller(ctx context.Context, sellerID int64) ([]models.Sale, error)
	ListRentalsByLender(ctx context.Context, lenderID int64) ([]models.Rental, error)
	ListRentalsByBorrower(ctx context.Context, borrowerID int64) ([]models.Rental, error)
}

// Tx runs inside a transaction. LockProduct holds the product until the
// transaction ends.
type Tx interface {
	LockProduct(ctx context.Context, id int64) (*models.Product, error)
	ListRentalsByProduct(ctx context.Context, productID int64) ([]models.Rental, error)
	CreateSale(ctx context.Context, productID, buyerID, sellerID int64, price decimal.Decimal) (*models.Sale, error)
	MarkProductSold(ctx context.Context, id int64) error
	CreateRental(ctx context.Context, p store.CreateRentalParams) (*models.Rental, error)
}

var ErrDatesUnavailable = apperr.Validation("Product is not available for the selected dates", nil)

type Engine struct {
	store  Store
	logger *slog.Logger
}

func NewEngine(s Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: s, logger: logger}
}

// Buy sells the product to buyerID. The sale and the availability flip
// commit together.
func (e *Engine) Buy(ctx context.Context, buyerID, productID int64) (*models.Sale, error) {
	var sale *models.Sale

	err := e.store.WithinTx(ctx, func(tx Tx) error {
		product, err := bookable(ctx, tx, productID)
		if err != nil {
			return err
		}
		if product.UserID == buyerID {
			return apperr.Validation("You cannot buy your own product", nil)
		}

		sale, err = tx.CreateSale(ctx, product.ID, buyerID, product.UserID, product.Price)
		if err != nil {
			return err
		}
		return tx.MarkProductSold(ctx, product.ID)
	})
	if err != nil {
		return nil, e.fail(ctx, "buy product", productID, err)
	}

	e.logger.InfoContext(ctx, "product sold",
		"product_id", productID, "buyer_id", buyerID, "sale_id", sale.ID)
	return sale, nil
}

// Rent books the product for the inclusive date range. The range must not
// overlap any existing rental of the product.
func (e *Engine) Rent(ctx context.Context, borrowerID, productID int64, fromDate, toDate string) (*models.Rental, error) {
	from, to, err := parseRange(fromDate, toDate)
	if err != nil {
		return nil, err
	}

	var rental *models.Rental

	err = e.store.WithinTx(ctx, func(tx Tx) error {
		product, err := bookable(ctx, tx, productID)
		if err != nil {
			return err
		}
		if product.UserID == borrowerID {
			return apperr.Validation("You cannot rent your own product", nil)
		}

		existing, err := tx.ListRentalsByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		for _, r := range existing {
			if Overlaps(from, to, r.FromDate, r.ToDate) {
				return ErrDatesUnavailable
			}
		}

		total := RentalTotal(from, to, product.RentPrice, product.RentPeriod)
		if total.GreaterThan(MaxAmount) {
			return apperr.Validation("Rental total is too large", map[string]string{
				"toDate": fmt.Sprintf("rental total must not exceed %s", MaxAmount.StringFixed(2)),
			})
		}

		rental, err = tx.CreateRental(ctx, store.CreateRentalParams{
			ProductID:  product.ID,
			LenderID:   product.UserID,
			BorrowerID: borrowerID,
			FromDate:   from,
			ToDate:     to,
			TotalPrice: total,
		})
		return err
	})
	if err != nil {
		return nil, e.fail(ctx, "rent product", productID, err)
	}

	e.logger.InfoContext(ctx, "product rented",
		"product_id", productID, "borrower_id", borrowerID, "rental_id", rental.ID,
		"from", fromDate, "to", toDate)
	return rental, nil
}

// ListMyTransactions collects every sale and rental userID took part in.
func (e *Engine) ListMyTransactions(ctx context.Context, userID int64) (*models.Transactions, error) {
	var (
		out models.Transactions
		err error
	)

	if out.Purchases, err = e.Purchases(ctx, userID); err != nil {
		return nil, err
	}
	if out.Sales, err = e.Sales(ctx, userID); err != nil {
		return nil, err
	}
	if out.RentalsOut, err = e.RentalsOut(ctx, userID); err != nil {
		return nil, err
	}
	if out.RentalsIn, err = e.RentalsIn(ctx, userID); err != nil {
		return nil, err
	}

	return &out, nil
}

// Purchases lists the sales where userID is the buyer.
func (e *Engine) Purchases(ctx context.Context, userID int64) ([]models.Sale, error) {
	sales, err := e.store.ListSalesByBuyer(ctx, userID)
	if err != nil {
		return nil, e.fail(ctx, "list purchases", userID, err)
	}
	return sales, nil
}

// Sales lists the sales where userID is the seller.
func (e *Engine) Sales(ctx context.Context, userID int64) ([]models.Sale, error) {
	sales, err := e.store.ListSalesBySeller(ctx, userID)
	if err != nil {
		return nil, e.fail(ctx, "list sales", userID, err)
	}
	return sales, nil
}

func (e *Engine) RentalsOut(ctx context.Context, userID int64) ([]models.Rental, error) {
	rentals, err := e.store.ListRentalsByLender(ctx, userID)
	if err != nil {
		return nil, e.fail(ctx, "list lent rentals", userID, err)
	}
	return rentals, nil
}

func (e *Engine) RentalsIn(ctx context.Context, userID int64) ([]models.Rental, error) {
	rentals, err := e.store.ListRentalsByBorrower(ctx, userID)
	if err != nil {
		return nil, e.fail(ctx, "list borrowed rentals", userID, err)
	}
	return rentals, nil
}

func bookable(ctx context.Context, tx Tx, productID int64) (*models.Product, error) {
	product, err := tx.LockProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Listable() {
		return nil, database.ErrProductUnavailable
	}
	return product, nil
}

func parseRange(fromDate, toDate string) (from, to time.Time, err error) {
	from, err = ParseDate(fromDate)
	if err != nil {
		return from, to, apperr.Validation("Invalid date", map[string]string{
			"fromDate": fmt.Sprintf("fromDate must be a date in %s format", models.DateLayout),
		})
	}
	to, err = ParseDate(toDate)
	if err != nil {
		return from, to, apperr.Validation("Invalid date", map[string]string{
			"toDate": fmt.Sprintf("toDate must be a date in %s format", models.DateLayout),
		})
	}
	if from.After(to) {
		return from, to, apperr.Validation("fromDate must not be after toDate", map[string]string{
			"fromDate": "fromDate must not be after toDate",
		})
	}
	return from, to, nil
}

// fail maps storage errors onto client errors. Unknown errors are logged
// and hidden behind an internal error.
func (e *Engine) fail(ctx context.Context, op string, id int64, err error) error {
	var appErr *apperr.Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, database.ErrProductNotFound), errors.Is(err, database.ErrProductUnavailable):
		return apperr.NotFound("Product")
	case database.IsForeignKeyViolation(err):
		if strings.Contains(database.ConstraintName(err), "product_id") {
			return apperr.NotFound("Product")
		}
		return apperr.NotFound("User")
	case database.IsCheckViolation(err):
		e.logger.WarnContext(ctx, op+" rejected by constraint", "id", id, "constraint", database.ConstraintName(err))
		return apperr.Validation("Invalid booking", nil)
	default:
		e.logger.ErrorContext(ctx, op+" failed", "id", id, "error", err)
		return apperr.Internal(err)
	}
}
