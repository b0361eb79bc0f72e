package graph

import (
	"context"
	"time"

	"github.com/graph-gophers/graphql-go"
	"github.com/safar/teebay/internal/account"
	"github.com/safar/teebay/internal/draft"
	"github.com/safar/teebay/internal/models"
)

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func (r *Resolver) products(ps []models.Product) []*productResolver {
	out := make([]*productResolver, len(ps))
	for i := range ps {
		out[i] = &productResolver{root: r, p: &ps[i]}
	}
	return out
}

func (r *Resolver) sales(ss []models.Sale) []*saleResolver {
	out := make([]*saleResolver, len(ss))
	for i := range ss {
		out[i] = &saleResolver{root: r, s: &ss[i]}
	}
	return out
}

func (r *Resolver) rentals(rs []models.Rental) []*rentalResolver {
	out := make([]*rentalResolver, len(rs))
	for i := range rs {
		out[i] = &rentalResolver{root: r, r: &rs[i]}
	}
	return out
}

func (r *Resolver) user(ctx context.Context, id int64) (*userResolver, error) {
	u, err := r.accounts.User(ctx, id)
	if err != nil {
		return nil, err
	}
	return &userResolver{root: r, u: u}, nil
}

func (r *Resolver) product(ctx context.Context, id int64) (*productResolver, error) {
	p, err := r.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &productResolver{root: r, p: p}, nil
}

type userResolver struct {
	root *Resolver
	u    *models.User
}

func (r *userResolver) ID() graphql.ID    { return toID(r.u.ID) }
func (r *userResolver) Email() string     { return r.u.Email }
func (r *userResolver) FirstName() string { return r.u.FirstName }
func (r *userResolver) LastName() string  { return r.u.LastName }
func (r *userResolver) Phone() *string    { return r.u.Phone }
func (r *userResolver) Address() *string  { return r.u.Address }
func (r *userResolver) CreatedAt() string { return timestamp(r.u.CreatedAt) }
func (r *userResolver) UpdatedAt() string { return timestamp(r.u.UpdatedAt) }

func (r *userResolver) Products(ctx context.Context) ([]*productResolver, error) {
	ps, err := r.root.catalog.ListByUser(ctx, r.u.ID)
	if err != nil {
		return nil, err
	}
	return r.root.products(ps), nil
}

func (r *userResolver) Sales(ctx context.Context) ([]*saleResolver, error) {
	ss, err := r.root.bookings.Sales(ctx, r.u.ID)
	if err != nil {
		return nil, err
	}
	return r.root.sales(ss), nil
}

func (r *userResolver) Purchases(ctx context.Context) ([]*saleResolver, error) {
	ss, err := r.root.bookings.Purchases(ctx, r.u.ID)
	if err != nil {
		return nil, err
	}
	return r.root.sales(ss), nil
}

func (r *userResolver) RentalsOut(ctx context.Context) ([]*rentalResolver, error) {
	rs, err := r.root.bookings.RentalsOut(ctx, r.u.ID)
	if err != nil {
		return nil, err
	}
	return r.root.rentals(rs), nil
}

func (r *userResolver) RentalsIn(ctx context.Context) ([]*rentalResolver, error) {
	rs, err := r.root.bookings.RentalsIn(ctx, r.u.ID)
	if err != nil {
		return nil, err
	}
	return r.root.rentals(rs), nil
}

type productResolver struct {
	root *Resolver
	p    *models.Product
}

func (r *productResolver) ID() graphql.ID      { return toID(r.p.ID) }
func (r *productResolver) Title() string       { return r.p.Title }
func (r *productResolver) Description() string { return r.p.Description }
func (r *productResolver) Price() float64      { return r.p.Price.InexactFloat64() }
func (r *productResolver) RentPrice() float64  { return r.p.RentPrice.InexactFloat64() }
func (r *productResolver) RentPeriod() string  { return string(r.p.RentPeriod) }
func (r *productResolver) Categories() []string {
	return models.CategoryStrings(r.p.Categories)
}
func (r *productResolver) CreatedAt() string { return timestamp(r.p.CreatedAt) }
func (r *productResolver) UpdatedAt() string { return timestamp(r.p.UpdatedAt) }
func (r *productResolver) IsDeleted() bool   { return r.p.IsDeleted }
func (r *productResolver) IsAvailable() bool { return r.p.IsAvailable }

func (r *productResolver) User(ctx context.Context) (*userResolver, error) {
	return r.root.user(ctx, r.p.UserID)
}

func (r *productResolver) Sales(ctx context.Context) ([]*saleResolver, error) {
	ss, err := r.root.catalog.Sales(ctx, r.p.ID)
	if err != nil {
		return nil, err
	}
	return r.root.sales(ss), nil
}

func (r *productResolver) Rentals(ctx context.Context) ([]*rentalResolver, error) {
	rs, err := r.root.catalog.Rentals(ctx, r.p.ID)
	if err != nil {
		return nil, err
	}
	return r.root.rentals(rs), nil
}

type saleResolver struct {
	root *Resolver
	s    *models.Sale
}

func (r *saleResolver) ID() graphql.ID    { return toID(r.s.ID) }
func (r *saleResolver) Price() float64    { return r.s.Price.InexactFloat64() }
func (r *saleResolver) CreatedAt() string { return timestamp(r.s.CreatedAt) }

func (r *saleResolver) Product(ctx context.Context) (*productResolver, error) {
	return r.root.product(ctx, r.s.ProductID)
}

func (r *saleResolver) Buyer(ctx context.Context) (*userResolver, error) {
	return r.root.user(ctx, r.s.BuyerID)
}

func (r *saleResolver) Seller(ctx context.Context) (*userResolver, error) {
	return r.root.user(ctx, r.s.SellerID)
}

type rentalResolver struct {
	root *Resolver
	r    *models.Rental
}

func (r *rentalResolver) ID() graphql.ID      { return toID(r.r.ID) }
func (r *rentalResolver) FromDate() string    { return r.r.FromDate.Format(models.DateLayout) }
func (r *rentalResolver) ToDate() string      { return r.r.ToDate.Format(models.DateLayout) }
func (r *rentalResolver) TotalPrice() float64 { return r.r.TotalPrice.InexactFloat64() }
func (r *rentalResolver) CreatedAt() string   { return timestamp(r.r.CreatedAt) }

func (r *rentalResolver) Product(ctx context.Context) (*productResolver, error) {
	return r.root.product(ctx, r.r.ProductID)
}

func (r *rentalResolver) Lender(ctx context.Context) (*userResolver, error) {
	return r.root.user(ctx, r.r.LenderID)
}

func (r *rentalResolver) Borrower(ctx context.Context) (*userResolver, error) {
	return r.root.user(ctx, r.r.BorrowerID)
}

type authPayloadResolver struct {
	root *Resolver
	res  *account.AuthResult
}

func (r *authPayloadResolver) Token() string { return r.res.Token }

func (r *authPayloadResolver) User() *userResolver {
	return &userResolver{root: r.root, u: r.res.User}
}

type formSessionResolver struct {
	s *draft.State
}

func (r *formSessionResolver) Step() int32       { return int32(r.s.Step) }
func (r *formSessionResolver) TotalSteps() int32 { return int32(r.s.TotalSteps) }

func (r *formSessionResolver) FormData() *formDataResolver {
	return &formDataResolver{d: r.s.FormData}
}

type formDataResolver struct {
	d models.ProductFormData
}

func (r *formDataResolver) Title() *string       { return r.d.Title }
func (r *formDataResolver) Description() *string { return r.d.Description }
func (r *formDataResolver) Price() *float64      { return r.d.Price }
func (r *formDataResolver) RentPrice() *float64  { return r.d.RentPrice }

func (r *formDataResolver) Categories() *[]string {
	if r.d.Categories == nil {
		return nil
	}
	cs := models.CategoryStrings(r.d.Categories)
	return &cs
}

func (r *formDataResolver) RentPeriod() *string {
	if r.d.RentPeriod == nil {
		return nil
	}
	s := string(*r.d.RentPeriod)
	return &s
}

type transactionsResolver struct {
	root *Resolver
	t    *models.Transactions
}

func (r *transactionsResolver) Purchases() []*saleResolver    { return r.root.sales(r.t.Purchases) }
func (r *transactionsResolver) Sales() []*saleResolver        { return r.root.sales(r.t.Sales) }
func (r *transactionsResolver) RentalsOut() []*rentalResolver { return r.root.rentals(r.t.RentalsOut) }
func (r *transactionsResolver) RentalsIn() []*rentalResolver  { return r.root.rentals(r.t.RentalsIn) }
