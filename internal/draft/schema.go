package draft

import (
	"fmt"

	"github.com/safar/teebay/internal/apperr"
	"github.com/safar/teebay/internal/models"
	"github.com/safar/teebay/internal/store"
	"github.com/safar/teebay/internal/validation"
	"github.com/shopspring/decimal"
)

const (
	StepTitle = iota + 1
	StepCategories
	StepDescription
	StepPricing
	StepReview

	TotalSteps = StepReview
)

// Listing is a draft that passed full validation.
type Listing struct {
	Title       string            `json:"title" validate:"required,min=3,max=100"`
	Categories  []models.Category `json:"categories" validate:"required,min=1,dive,category"`
	Description string            `json:"description" validate:"required,min=20,max=1000"`
	Price       float64           `json:"price" validate:"required,gte=0.01,lte=9999999999.99"`
	RentPrice   float64           `json:"rentPrice" validate:"required,gte=0.01,lte=9999999999.99"`
	RentPeriod  models.RentPeriod `json:"rentPeriod" validate:"required,rentperiod"`
}

func (l Listing) params(userID int64) store.CreateProductParams {
	return store.CreateProductParams{
		UserID:      userID,
		Title:       l.Title,
		Description: l.Description,
		Price:       decimal.NewFromFloat(l.Price).Round(2),
		RentPrice:   decimal.NewFromFloat(l.RentPrice).Round(2),
		RentPeriod:  l.RentPeriod,
		Categories:  l.Categories,
	}
}

func ValidStep(step int) bool {
	return step >= StepTitle && step <= TotalSteps
}

func invalidStep(step int) error {
	return apperr.Validation("Invalid step number", map[string]string{
		"step": fmt.Sprintf("step must be between 1 and %d, got %d", TotalSteps, step),
	})
}

// ValidateStep checks data against the schema of step. For the review step,
// data must be the merged draft: every field is required.
func ValidateStep(step int, data models.ProductFormData) error {
	if !ValidStep(step) {
		return invalidStep(step)
	}
	if err := validation.Default().Struct(data); err != nil {
		return err
	}

	switch step {
	case StepTitle:
		return requireFields(field{"title", data.Title != nil})
	case StepCategories:
		return requireFields(field{"categories", len(data.Categories) > 0})
	case StepDescription:
		return requireFields(field{"description", data.Description != nil})
	case StepPricing:
		return requireFields(
			field{"price", data.Price != nil},
			field{"rentPrice", data.RentPrice != nil},
			field{"rentPeriod", data.RentPeriod != nil},
		)
	default:
		_, err := ValidateComplete(data)
		return err
	}
}

// ValidateComplete checks that data describes a full product.
func ValidateComplete(data models.ProductFormData) (Listing, error) {
	l := Listing{Categories: data.Categories}
	if data.Title != nil {
		l.Title = *data.Title
	}
	if data.Description != nil {
		l.Description = *data.Description
	}
	if data.Price != nil {
		l.Price = *data.Price
	}
	if data.RentPrice != nil {
		l.RentPrice = *data.RentPrice
	}
	if data.RentPeriod != nil {
		l.RentPeriod = *data.RentPeriod
	}

	if err := validation.Default().Struct(l); err != nil {
		return Listing{}, err
	}
	return l, nil
}

type field struct {
	name    string
	present bool
}

func requireFields(fields ...field) error {
	var details map[string]string
	var first string
	for _, f := range fields {
		if f.present {
			continue
		}
		if details == nil {
			details = map[string]string{}
		}
		msg := fmt.Sprintf("%s is required", f.name)
		details[f.name] = msg
		if first == "" {
			first = msg
		}
	}
	if details == nil {
		return nil
	}
	return apperr.Validation(first, details)
}
