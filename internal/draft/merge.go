package draft

import "github.com/safar/teebay/internal/models"

// MergePartial overlays next on prev. Fields set in next win; fields left nil
// in next keep their previous value. Neither argument is modified.
func MergePartial(prev, next models.ProductFormData) models.ProductFormData {
	merged := clone(prev)

	if next.Title != nil {
		merged.Title = copyPtr(next.Title)
	}
	if next.Categories != nil {
		merged.Categories = append([]models.Category{}, next.Categories...)
	}
	if next.Description != nil {
		merged.Description = copyPtr(next.Description)
	}
	if next.Price != nil {
		merged.Price = copyPtr(next.Price)
	}
	if next.RentPrice != nil {
		merged.RentPrice = copyPtr(next.RentPrice)
	}
	if next.RentPeriod != nil {
		merged.RentPeriod = copyPtr(next.RentPeriod)
	}

	return merged
}

func clone(d models.ProductFormData) models.ProductFormData {
	out := models.ProductFormData{
		Title:       copyPtr(d.Title),
		Description: copyPtr(d.Description),
		Price:       copyPtr(d.Price),
		RentPrice:   copyPtr(d.RentPrice),
		RentPeriod:  copyPtr(d.RentPeriod),
	}
	if d.Categories != nil {
		out.Categories = append([]models.Category{}, d.Categories...)
	}
	return out
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// FromProduct frames an existing product as a filled-in form.
func FromProduct(p *models.Product) models.ProductFormData {
	price := p.Price.InexactFloat64()
	rentPrice := p.RentPrice.InexactFloat64()
	period := p.RentPeriod

	return models.ProductFormData{
		Title:       &p.Title,
		Categories:  append([]models.Category{}, p.Categories...),
		Description: &p.Description,
		Price:       &price,
		RentPrice:   &rentPrice,
		RentPeriod:  &period,
	}
}
