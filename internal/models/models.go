package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Address      *string   `json:"address,omitempty" db:"address"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type Product struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	RentPrice   decimal.Decimal `json:"rent_price"`
	RentPeriod  RentPeriod      `json:"rent_period"`
	Categories  []Category      `json:"categories"`
	IsAvailable bool            `json:"is_available"`
	IsDeleted   bool            `json:"is_deleted"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// Listable reports whether the product may be shown in listings and booked.
func (p *Product) Listable() bool {
	return !p.IsDeleted && p.IsAvailable
}

// Sale records a purchase. Price is the product price at the time of sale.
type Sale struct {
	ID        int64           `json:"id" db:"id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	BuyerID   int64           `json:"buyer_id" db:"buyer_id"`
	SellerID  int64           `json:"seller_id" db:"seller_id"`
	Price     decimal.Decimal `json:"price" db:"price"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Rental records a booking of a product over an inclusive date range.
type Rental struct {
	ID         int64           `json:"id" db:"id"`
	ProductID  int64           `json:"product_id" db:"product_id"`
	LenderID   int64           `json:"lender_id" db:"lender_id"`
	BorrowerID int64           `json:"borrower_id" db:"borrower_id"`
	FromDate   time.Time       `json:"from_date" db:"from_date"`
	ToDate     time.Time       `json:"to_date" db:"to_date"`
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// ProductFormData is the partial listing accumulated by the product wizard.
// Nil fields have not been entered yet.
type ProductFormData struct {
	Title       *string     `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Categories  []Category  `json:"categories,omitempty" validate:"omitempty,min=1,dive,category"`
	Description *string     `json:"description,omitempty" validate:"omitempty,min=20,max=1000"`
	Price       *float64    `json:"price,omitempty" validate:"omitempty,gte=0.01,lte=9999999999.99"`
	RentPrice   *float64    `json:"rentPrice,omitempty" validate:"omitempty,gte=0.01,lte=9999999999.99"`
	RentPeriod  *RentPeriod `json:"rentPeriod,omitempty" validate:"omitempty,rentperiod"`
}

type DraftSession struct {
	UserID    int64           `json:"user_id"`
	Step      int             `json:"step"`
	FormData  ProductFormData `json:"form_data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Transactions groups the sales and rentals a user took part in.
type Transactions struct {
	Purchases  []Sale   `json:"purchases"`
	Sales      []Sale   `json:"sales"`
	RentalsOut []Rental `json:"rentals_out"`
	RentalsIn  []Rental `json:"rentals_in"`
}

// DateLayout is the calendar-date format used for rental ranges.
const DateLayout = "2006-01-02"
