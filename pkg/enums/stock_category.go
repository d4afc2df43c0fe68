package enums

import "fmt"

// StockCategory identifies one of the ordering backend's catalog buckets.
type StockCategory string

const (
	StockCategoryMeat    StockCategory = "meat"
	StockCategorySauce   StockCategory = "sauce"
	StockCategoryGarnish StockCategory = "garnish"
	StockCategoryExtra   StockCategory = "extra"
	StockCategoryDrink   StockCategory = "drink"
	StockCategoryDessert StockCategory = "dessert"
)

var validStockCategories = []StockCategory{
	StockCategoryMeat,
	StockCategorySauce,
	StockCategoryGarnish,
	StockCategoryExtra,
	StockCategoryDrink,
	StockCategoryDessert,
}

// String implements fmt.Stringer.
func (c StockCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known StockCategory.
func (c StockCategory) IsValid() bool {
	for _, candidate := range validStockCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseStockCategory converts raw input into a StockCategory.
func ParseStockCategory(value string) (StockCategory, error) {
	for _, candidate := range validStockCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock category %q", value)
}
