package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/safar/teebay/internal/models"
	"github.com/shopspring/decimal"
)

const saleColumns = `id, product_id, buyer_id, seller_id, price, created_at`

func CreateSale(ctx context.Context, q sqlx.ExtContext, productID, buyerID, sellerID int64, price decimal.Decimal) (*models.Sale, error) {
	sale := &models.Sale{}

	query := `
		INSERT INTO sales (product_id, buyer_id, seller_id, price, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING ` + saleColumns

	if err := sqlx.GetContext(ctx, q, sale, query, productID, buyerID, sellerID, price); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	return sale, nil
}

func ListSalesByBuyer(ctx context.Context, q sqlx.ExtContext, buyerID int64) ([]models.Sale, error) {
	return listSales(ctx, q, `WHERE buyer_id = $1`, buyerID)
}

func ListSalesBySeller(ctx context.Context, q sqlx.ExtContext, sellerID int64) ([]models.Sale, error) {
	return listSales(ctx, q, `WHERE seller_id = $1`, sellerID)
}

func ListSalesByProduct(ctx context.Context, q sqlx.ExtContext, productID int64) ([]models.Sale, error) {
	return listSales(ctx, q, `WHERE product_id = $1`, productID)
}

func listSales(ctx context.Context, q sqlx.ExtContext, where string, id int64) ([]models.Sale, error) {
	sales := []models.Sale{}

	query := `SELECT ` + saleColumns + ` FROM sales ` + where + ` ORDER BY created_at DESC, id DESC`

	if err := sqlx.SelectContext(ctx, q, &sales, query, id); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	return sales, nil
}
