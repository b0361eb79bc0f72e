package draft

import (
	"testing"

	"github.com/safar/teebay/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestMergePartialLastWriteWins(t *testing.T) {
	prev := models.ProductFormData{Title: ptr("Old bike"), Price: ptr(10.0)}
	next := models.ProductFormData{Title: ptr("New bike")}

	merged := MergePartial(prev, next)

	assert.Equal(t, "New bike", *merged.Title)
	assert.Equal(t, 10.0, *merged.Price)
	assert.Nil(t, merged.Description)
}

func TestMergePartialKeepsDisjointFields(t *testing.T) {
	merged := MergePartial(
		models.ProductFormData{Title: ptr("Bike")},
		models.ProductFormData{Categories: []models.Category{models.CategoryOutdoor}},
	)

	assert.Equal(t, "Bike", *merged.Title)
	assert.Equal(t, []models.Category{models.CategoryOutdoor}, merged.Categories)
}

func TestMergePartialReplacesCategories(t *testing.T) {
	merged := MergePartial(
		models.ProductFormData{Categories: []models.Category{models.CategoryToys, models.CategoryOutdoor}},
		models.ProductFormData{Categories: []models.Category{models.CategoryFurniture}},
	)

	assert.Equal(t, []models.Category{models.CategoryFurniture}, merged.Categories)
}

func TestMergePartialDoesNotAlias(t *testing.T) {
	prev := models.ProductFormData{Title: ptr("Bike")}
	next := models.ProductFormData{Categories: []models.Category{models.CategoryToys}}

	merged := MergePartial(prev, next)
	*merged.Title = "Changed"
	merged.Categories[0] = models.CategoryFurniture

	assert.Equal(t, "Bike", *prev.Title)
	assert.Equal(t, models.CategoryToys, next.Categories[0])
}

func TestFromProduct(t *testing.T) {
	p := &models.Product{
		Title:       "Mountain bike",
		Description: "Barely used, new tyres and brakes.",
		Price:       decimal.RequireFromString("120.50"),
		RentPrice:   decimal.RequireFromString("15"),
		RentPeriod:  models.RentWeekly,
		Categories:  []models.Category{models.CategorySportingGoods},
	}

	form := FromProduct(p)

	assert.Equal(t, "Mountain bike", *form.Title)
	assert.Equal(t, 120.5, *form.Price)
	assert.Equal(t, 15.0, *form.RentPrice)
	assert.Equal(t, models.RentWeekly, *form.RentPeriod)
	assert.Equal(t, p.Categories, form.Categories)
}
