package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/lib/pq"
	"github.com/safar/teebay/internal/apperr"
	"github.com/safar/teebay/internal/database"
	"github.com/safar/teebay/internal/models"
	"github.com/safar/teebay/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID  = int64(1)
	buyerID  = int64(2)
	buyer2ID = int64(3)
)

// memStore serialises WithinTx on one mutex, which stands in for the row
// lock Postgres takes on the product.
type memStore struct {
	mu       sync.Mutex
	products map[int64]*models.Product
	sales    []models.Sale
	rentals  []models.Rental

	saleErr error
}

func newMemStore(products ...models.Product) *memStore {
	s := &memStore{products: map[int64]*models.Product{}}
	for i := range products {
		p := products[i]
		s.products[p.ID] = &p
	}
	return s
}

func (s *memStore) WithinTx(_ context.Context, fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make(map[int64]*models.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	sales, rentals := len(s.sales), len(s.rentals)

	if err := fn(s); err != nil {
		s.products = products
		s.sales, s.rentals = s.sales[:sales], s.rentals[:rentals]
		return err
	}
	return nil
}

func (s *memStore) LockProduct(_ context.Context, id int64) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, database.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) ListRentalsByProduct(_ context.Context, productID int64) ([]models.Rental, error) {
	var out []models.Rental
	for _, r := range s.rentals {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) CreateSale(_ context.Context, productID, buyerID, sellerID int64, price decimal.Decimal) (*models.Sale, error) {
	if s.saleErr != nil {
		return nil, s.saleErr
	}
	sale := models.Sale{
		ID: int64(len(s.sales) + 1), ProductID: productID, BuyerID: buyerID, SellerID: sellerID, Price: price,
	}
	s.sales = append(s.sales, sale)
	return &sale, nil
}

func (s *memStore) MarkProductSold(_ context.Context, id int64) error {
	p, ok := s.products[id]
	if !ok || !p.Listable() {
		return database.ErrProductUnavailable
	}
	p.IsAvailable = false
	return nil
}

func (s *memStore) CreateRental(_ context.Context, p store.CreateRentalParams) (*models.Rental, error) {
	r := models.Rental{
		ID:         int64(len(s.rentals) + 1),
		ProductID:  p.ProductID,
		LenderID:   p.LenderID,
		BorrowerID: p.BorrowerID,
		FromDate:   p.FromDate,
		ToDate:     p.ToDate,
		TotalPrice: p.TotalPrice,
	}
	s.rentals = append(s.rentals, r)
	return &r, nil
}

func (s *memStore) ListSalesByBuyer(_ context.Context, id int64) ([]models.Sale, error) {
	return s.filterSales(func(x models.Sale) bool { return x.BuyerID == id }), nil
}

func (s *memStore) ListSalesBySeller(_ context.Context, id int64) ([]models.Sale, error) {
	return s.filterSales(func(x models.Sale) bool { return x.SellerID == id }), nil
}

func (s *memStore) ListRentalsByLender(_ context.Context, id int64) ([]models.Rental, error) {
	return s.filterRentals(func(x models.Rental) bool { return x.LenderID == id }), nil
}

func (s *memStore) ListRentalsByBorrower(_ context.Context, id int64) ([]models.Rental, error) {
	return s.filterRentals(func(x models.Rental) bool { return x.BorrowerID == id }), nil
}

func (s *memStore) filterSales(keep func(models.Sale) bool) []models.Sale {
	out := []models.Sale{}
	for _, x := range s.sales {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}

func (s *memStore) filterRentals(keep func(models.Rental) bool) []models.Rental {
	out := []models.Rental{}
	for _, x := range s.rentals {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}

func bike() models.Product {
	return models.Product{
		ID:          10,
		UserID:      ownerID,
		Title:       "Bike",
		Price:       decimal.NewFromInt(50),
		RentPrice:   decimal.NewFromInt(10),
		RentPeriod:  models.RentDaily,
		IsAvailable: true,
	}
}

func newTestEngine(s *memStore) *Engine {
	return NewEngine(s, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBuy(t *testing.T) {
	s := newMemStore(bike())
	e := newTestEngine(s)

	sale, err := e.Buy(context.Background(), buyerID, 10)
	require.NoError(t, err)
	assert.Equal(t, buyerID, sale.BuyerID)
	assert.Equal(t, ownerID, sale.SellerID)
	assert.True(t, sale.Price.Equal(decimal.NewFromInt(50)))
	assert.False(t, s.products[10].IsAvailable)

	_, err = e.Buy(context.Background(), buyer2ID, 10)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Len(t, s.sales, 1)
}

func TestBuyRejections(t *testing.T) {
	deleted := bike()
	deleted.ID = 11
	deleted.IsDeleted = true

	s := newMemStore(bike(), deleted)
	e := newTestEngine(s)
	ctx := context.Background()

	_, err := e.Buy(ctx, ownerID, 10)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = e.Buy(ctx, buyerID, 11)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = e.Buy(ctx, buyerID, 999)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	assert.Empty(t, s.sales)
	assert.True(t, s.products[10].IsAvailable)
}

func TestBuyStorageFailureRollsBack(t *testing.T) {
	s := newMemStore(bike())
	s.saleErr = errors.New("connection reset")
	e := newTestEngine(s)

	_, err := e.Buy(context.Background(), buyerID, 10)
	assert.True(t, apperr.Is(err, apperr.KindInternal))
	assert.True(t, s.products[10].IsAvailable)
}

func TestBuyMapsConstraintViolations(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperr.Kind
		msg  string
	}{
		{"buyer gone", &pq.Error{Code: "23503", Constraint: "sales_buyer_id_fkey"}, apperr.KindNotFound, "User not found"},
		{"product gone", &pq.Error{Code: "23503", Constraint: "sales_product_id_fkey"}, apperr.KindNotFound, "Product not found"},
		{"check", &pq.Error{Code: "23514", Constraint: "sales_check"}, apperr.KindValidation, "Invalid booking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMemStore(bike())
			s.saleErr = tt.err
			e := newTestEngine(s)

			_, err := e.Buy(context.Background(), buyerID, 10)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
			assert.Equal(t, tt.msg, err.Error())
			assert.True(t, s.products[10].IsAvailable)
		})
	}
}

func TestConcurrentBuyersOneSale(t *testing.T) {
	s := newMemStore(bike())
	e := newTestEngine(s)

	const buyers = 8
	var wg sync.WaitGroup
	errs := make(chan error, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := e.Buy(context.Background(), id, 10)
			errs <- err
		}(int64(100 + i))
	}
	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	}

	assert.Equal(t, 1, wins)
	assert.Len(t, s.sales, 1)
	assert.False(t, s.products[10].IsAvailable)
}

func TestRentInclusiveBoundary(t *testing.T) {
	s := newMemStore(bike())
	e := newTestEngine(s)
	ctx := context.Background()

	first, err := e.Rent(ctx, buyerID, 10, "2024-01-01", "2024-01-07")
	require.NoError(t, err)
	assert.Equal(t, "60.00", first.TotalPrice.StringFixed(2))
	assert.Equal(t, ownerID, first.LenderID)

	_, err = e.Rent(ctx, buyer2ID, 10, "2024-01-07", "2024-01-10")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	second, err := e.Rent(ctx, buyer2ID, 10, "2024-01-08", "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, buyer2ID, second.BorrowerID)

	assert.Len(t, s.rentals, 2)
	assert.True(t, s.products[10].IsAvailable)
}

func TestRentRejections(t *testing.T) {
	sold := bike()
	sold.ID = 12
	sold.IsAvailable = false

	s := newMemStore(bike(), sold)
	e := newTestEngine(s)
	ctx := context.Background()

	tests := []struct {
		name     string
		borrower int64
		product  int64
		from, to string
		kind     apperr.Kind
	}{
		{"self rental", ownerID, 10, "2024-01-01", "2024-01-02", apperr.KindValidation},
		{"bad from", buyerID, 10, "yesterday", "2024-01-02", apperr.KindValidation},
		{"bad to", buyerID, 10, "2024-01-01", "2024-13-01", apperr.KindValidation},
		{"reversed range", buyerID, 10, "2024-01-05", "2024-01-01", apperr.KindValidation},
		{"unavailable", buyerID, 12, "2024-01-01", "2024-01-02", apperr.KindNotFound},
		{"missing", buyerID, 999, "2024-01-01", "2024-01-02", apperr.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Rent(ctx, tt.borrower, tt.product, tt.from, tt.to)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
		})
	}
	assert.Empty(t, s.rentals)
}

func TestRentRejectsTotalAboveColumn(t *testing.T) {
	pricey := bike()
	pricey.RentPrice = MaxAmount
	pricey.RentPeriod = models.RentHourly

	s := newMemStore(pricey)
	e := newTestEngine(s)

	_, err := e.Rent(context.Background(), buyerID, 10, "2024-01-01", "2024-01-02")
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Details, "toDate")
	assert.Empty(t, s.rentals)

	sameDay, err := e.Rent(context.Background(), buyerID, 10, "2024-01-01", "2024-01-01")
	require.NoError(t, err)
	assert.True(t, sameDay.TotalPrice.IsZero())
}

func TestConcurrentOverlappingRentals(t *testing.T) {
	s := newMemStore(bike())
	e := newTestEngine(s)

	const borrowers = 6
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := 0; i < borrowers; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if _, err := e.Rent(context.Background(), id, 10, "2024-03-01", "2024-03-05"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(int64(200 + i))
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Len(t, s.rentals, 1)
}

func TestListMyTransactions(t *testing.T) {
	lamp := bike()
	lamp.ID = 20
	lamp.UserID = buyerID

	s := newMemStore(bike(), lamp)
	e := newTestEngine(s)
	ctx := context.Background()

	_, err := e.Buy(ctx, buyerID, 10)
	require.NoError(t, err)
	_, err = e.Rent(ctx, ownerID, 20, "2024-05-01", "2024-05-02")
	require.NoError(t, err)

	txs, err := e.ListMyTransactions(ctx, buyerID)
	require.NoError(t, err)
	assert.Len(t, txs.Purchases, 1)
	assert.Empty(t, txs.Sales)
	assert.Len(t, txs.RentalsOut, 1)
	assert.Empty(t, txs.RentalsIn)

	txs, err = e.ListMyTransactions(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, txs.Purchases)
	assert.Len(t, txs.Sales, 1)
	assert.Empty(t, txs.RentalsOut)
	assert.Len(t, txs.RentalsIn, 1)
}
