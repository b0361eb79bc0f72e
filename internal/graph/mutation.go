package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"
	"github.com/safar/teebay/internal/account"
	"github.com/safar/teebay/internal/auth"
	"github.com/safar/teebay/internal/models"
)

type productFormInput struct {
	Title       *string
	Categories  *[]string
	Description *string
	Price       *float64
	RentPrice   *float64
	RentPeriod  *string
}

func (in productFormInput) formData() models.ProductFormData {
	data := models.ProductFormData{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		RentPrice:   in.RentPrice,
	}
	if in.Categories != nil {
		data.Categories = models.CategoriesFromStrings(*in.Categories)
	}
	if in.RentPeriod != nil {
		p := models.RentPeriod(*in.RentPeriod)
		data.RentPeriod = &p
	}
	return data
}

func (r *Resolver) Register(ctx context.Context, args struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
	Address   *string
}) (*authPayloadResolver, error) {
	res, err := r.accounts.Register(ctx, account.RegisterInput{
		Email:     args.Email,
		Password:  args.Password,
		FirstName: args.FirstName,
		LastName:  args.LastName,
		Phone:     args.Phone,
		Address:   args.Address,
	})
	if err != nil {
		return nil, err
	}
	return &authPayloadResolver{root: r, res: res}, nil
}

func (r *Resolver) Login(ctx context.Context, args struct {
	Email    string
	Password string
}) (*authPayloadResolver, error) {
	res, err := r.accounts.Login(ctx, account.LoginInput{Email: args.Email, Password: args.Password})
	if err != nil {
		return nil, err
	}
	return &authPayloadResolver{root: r, res: res}, nil
}

func (r *Resolver) CreateProductStep(ctx context.Context, args struct {
	Step     int32
	FormData productFormInput
}) (*formSessionResolver, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	state, err := r.drafts.SaveStep(ctx, userID, int(args.Step), args.FormData.formData())
	if err != nil {
		return nil, err
	}
	return &formSessionResolver{s: state}, nil
}

func (r *Resolver) SubmitProductForm(ctx context.Context) (*productResolver, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	p, err := r.drafts.Submit(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &productResolver{root: r, p: p}, nil
}

func (r *Resolver) UpdateProduct(ctx context.Context, args struct {
	ID          graphql.ID
	Title       *string
	Description *string
	Price       *float64
	RentPrice   *float64
	RentPeriod  *string
	Categories  *[]string
}) (*productResolver, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	fields := productFormInput{
		Title:       args.Title,
		Categories:  args.Categories,
		Description: args.Description,
		Price:       args.Price,
		RentPrice:   args.RentPrice,
		RentPeriod:  args.RentPeriod,
	}
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	p, err := r.catalog.Update(ctx, userID, id, fields.formData())
	if err != nil {
		return nil, err
	}
	return &productResolver{root: r, p: p}, nil
}

func (r *Resolver) DeleteProduct(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return false, err
	}
	id, err := parseID(args.ID)
	if err != nil {
		return false, err
	}
	return r.catalog.Delete(ctx, userID, id)
}

func (r *Resolver) BuyProduct(ctx context.Context, args struct{ ProductID graphql.ID }) (*saleResolver, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	productID, err := parseID(args.ProductID)
	if err != nil {
		return nil, err
	}
	sale, err := r.bookings.Buy(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	return &saleResolver{root: r, s: sale}, nil
}

func (r *Resolver) RentProduct(ctx context.Context, args struct {
	ProductID graphql.ID
	FromDate  string
	ToDate    string
}) (*rentalResolver, error) {
	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	productID, err := parseID(args.ProductID)
	if err != nil {
		return nil, err
	}
	rental, err := r.bookings.Rent(ctx, userID, productID, args.FromDate, args.ToDate)
	if err != nil {
		return nil, err
	}
	return &rentalResolver{root: r, r: rental}, nil
}
