package graph

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/graph-gophers/graphql-go"
	"github.com/safar/teebay/internal/account"
	"github.com/safar/teebay/internal/apperr"
	"github.com/safar/teebay/internal/auth"
	"github.com/safar/teebay/internal/booking"
	"github.com/safar/teebay/internal/catalog"
	"github.com/safar/teebay/internal/draft"
)

// Resolver is the root of both Query and Mutation.
type Resolver struct {
	accounts *account.Service
	catalog  *catalog.Service
	drafts   *draft.Manager
	bookings *booking.Engine
	logger   *slog.Logger
}

func NewResolver(accounts *account.Service, cat *catalog.Service, drafts *draft.Manager, bookings *booking.Engine, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		accounts: accounts,
		catalog:  cat,
		drafts:   drafts,
		bookings: bookings,
		logger:   logger,
	}
}

func parseID(id graphql.ID) (int64, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, apperr.Validation("Invalid id", map[string]string{"id": "id must be a positive integer"})
	}
	return n, nil
}

func toID(n int64) graphql.ID {
	return graphql.ID(strconv.FormatInt(n, 10))
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	u, err := r.accounts.Me(ctx)
	if err != nil {
		return nil, err
	}
	return &userResolver{root: r, u: u}, nil
}

func (r *Resolver) Users(ctx context.Context) ([]*userResolver, error) {
	users, err := r.accounts.Users(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*userResolver, len(users))
	for i := range users {
		out[i] = &userResolver{root: r, u: &users[i]}
	}
	return out, nil
}

func (r *Resolver) User(ctx context.Context, args struct{ ID graphql.ID }) (*userResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	u, err := r.accounts.User(ctx, id)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &userResolver{root: r, u: u}, nil
}

func (r *Resolver) GetProductsByUser(ctx context.Context, args struct{ UserID graphql.ID }) ([]*productResolver, error) {
	userID, err := parseID(args.UserID)
	if err != nil {
		return nil, err
	}
	products, err := r.catalog.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.products(products), nil
}

// GetProduct returns null for an unknown id. Tombstoned products are
// returned with isDeleted set.
func (r *Resolver) GetProduct(ctx context.Context, args struct{ ID graphql.ID }) (*productResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	p, err := r.catalog.Get(ctx, id)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &productResolver{root: r, p: p}, nil
}

func (r *Resolver) GetAvailableProducts(ctx context.Context) ([]*productResolver, error) {
	products, err := r.catalog.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return r.products(products), nil
}

func (r *Resolver) GetMyTransactions(ctx context.Context) (*transactionsResolver, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := r.bookings.ListMyTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &transactionsResolver{root: r, t: txs}, nil
}

func (r *Resolver) GetProductFormState(ctx context.Context, args struct{ ID *graphql.ID }) (*formSessionResolver, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	var productID *int64
	if args.ID != nil {
		id, err := parseID(*args.ID)
		if err != nil {
			return nil, err
		}
		productID = &id
	}

	state, err := r.drafts.GetState(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	return &formSessionResolver{s: state}, nil
}
