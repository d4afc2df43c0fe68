package stock

import (
	"sort"

	"github.com/google/uuid"

	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
	pkgerrors "github.com/maxscharwath/tacocrew-sub004/pkg/errors"
	"github.com/maxscharwath/tacocrew-sub004/pkg/types"
)

// availability accumulates unknown and depleted references across a whole
// cart. Validation never short-circuits: a caller fixing the report must
// not discover new problems on resubmit that were already visible now.
type availability struct {
	notFound   map[uuid.UUID]struct{}
	outOfStock map[uuid.UUID]struct{}
}

func newAvailability() *availability {
	return &availability{
		notFound:   map[uuid.UUID]struct{}{},
		outOfStock: map[uuid.UUID]struct{}{},
	}
}

func (a *availability) check(snapshot *Snapshot, category enums.StockCategory, id uuid.UUID) {
	entry, ok := snapshot.Find(category, id)
	if !ok {
		a.notFound[id] = struct{}{}
		return
	}
	if !entry.InStock {
		a.outOfStock[id] = struct{}{}
	}
}

func (a *availability) ok() bool {
	return len(a.notFound) == 0 && len(a.outOfStock) == 0
}

func sortedIDs(set map[uuid.UUID]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return ids
}

// ValidateAvailability checks every id a cart references against the
// snapshot and reports all failures in one pass. A nil return means every
// referenced entry exists and is in stock right now.
func ValidateAvailability(items types.OrderItems, snapshot *Snapshot) error {
	report := newAvailability()

	for _, taco := range items.Tacos {
		for _, meat := range taco.Meats {
			report.check(snapshot, enums.StockCategoryMeat, meat.ID)
		}
		for _, sauce := range taco.Sauces {
			report.check(snapshot, enums.StockCategorySauce, sauce)
		}
		for _, garnish := range taco.Garnishes {
			report.check(snapshot, enums.StockCategoryGarnish, garnish)
		}
	}
	for _, extra := range items.Extras {
		report.check(snapshot, enums.StockCategoryExtra, extra.ID)
		for _, sauce := range extra.FreeSauces {
			report.check(snapshot, enums.StockCategorySauce, sauce)
		}
	}
	for _, drink := range items.Drinks {
		report.check(snapshot, enums.StockCategoryDrink, drink.ID)
	}
	for _, dessert := range items.Desserts {
		report.check(snapshot, enums.StockCategoryDessert, dessert.ID)
	}

	if report.ok() {
		return nil
	}

	err := pkgerrors.New(pkgerrors.CodeValidation, "cart references unavailable stock")
	return err.WithDetails(map[string]any{
		"not_found":    sortedIDs(report.notFound),
		"out_of_stock": sortedIDs(report.outOfStock),
	})
}
