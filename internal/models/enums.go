package models

import "time"

type Category string

const (
	CategoryElectronics    Category = "ELECTRONICS"
	CategoryFurniture      Category = "FURNITURE"
	CategoryHomeAppliances Category = "HOME_APPLIANCES"
	CategorySportingGoods  Category = "SPORTING_GOODS"
	CategoryOutdoor        Category = "OUTDOOR"
	CategoryToys           Category = "TOYS"
)

var Categories = []Category{
	CategoryElectronics,
	CategoryFurniture,
	CategoryHomeAppliances,
	CategorySportingGoods,
	CategoryOutdoor,
	CategoryToys,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type RentPeriod string

const (
	RentHourly  RentPeriod = "HOURLY"
	RentDaily   RentPeriod = "DAILY"
	RentWeekly  RentPeriod = "WEEKLY"
	RentMonthly RentPeriod = "MONTHLY"
)

func (p RentPeriod) Valid() bool {
	return p.Duration() > 0
}

// Duration is the length of one billable unit. A month is 30 days.
func (p RentPeriod) Duration() time.Duration {
	switch p {
	case RentHourly:
		return time.Hour
	case RentDaily:
		return 24 * time.Hour
	case RentWeekly:
		return 7 * 24 * time.Hour
	case RentMonthly:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

// CategoryStrings converts categories for storage in a text[] column.
func CategoryStrings(categories []Category) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

func CategoriesFromStrings(values []string) []Category {
	out := make([]Category, len(values))
	for i, v := range values {
		out[i] = Category(v)
	}
	return out
}
