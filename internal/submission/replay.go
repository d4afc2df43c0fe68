package submission

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/maxscharwath/tacocrew-sub004/internal/stock"
	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
	pkgerrors "github.com/maxscharwath/tacocrew-sub004/pkg/errors"
	"github.com/maxscharwath/tacocrew-sub004/pkg/ordering"
	"github.com/maxscharwath/tacocrew-sub004/pkg/types"
)

// replayLine is one pending backend call for one cart line.
type replayLine struct {
	kind string
	call func(ctx context.Context) error
}

// buildLines translates the merged cart into backend calls, resolving every
// internal id back to its external code through the snapshot. Validation has
// already run against the same snapshot, so a miss here is a programming
// error, not a user error.
func buildLines(client cartWriter, session *ordering.Session, items types.OrderItems, snapshot *stock.Snapshot) ([]replayLine, error) {
	resolve := func(category enums.StockCategory, id uuid.UUID) (string, error) {
		entry, ok := snapshot.Find(category, id)
		if !ok {
			return "", pkgerrors.New(pkgerrors.CodeInternal, "validated stock entry missing from snapshot")
		}
		return entry.Code, nil
	}

	lines := make([]replayLine, 0, items.LineCount())

	for _, taco := range items.Tacos {
		params := ordering.TacoParams{
			Size: string(taco.Size),
			Qty:  taco.Qty,
		}
		if taco.Note != nil {
			params.Note = *taco.Note
		}
		for _, meat := range taco.Meats {
			code, err := resolve(enums.StockCategoryMeat, meat.ID)
			if err != nil {
				return nil, err
			}
			params.Meats = append(params.Meats, ordering.MeatPortion{Code: code, Qty: meat.Qty})
		}
		for _, sauce := range taco.Sauces {
			code, err := resolve(enums.StockCategorySauce, sauce)
			if err != nil {
				return nil, err
			}
			params.Sauces = append(params.Sauces, code)
		}
		for _, garnish := range taco.Garnishes {
			code, err := resolve(enums.StockCategoryGarnish, garnish)
			if err != nil {
				return nil, err
			}
			params.Garnishes = append(params.Garnishes, code)
		}
		lines = append(lines, replayLine{
			kind: "taco",
			call: func(ctx context.Context) error { return client.AddTaco(ctx, session, params) },
		})
	}

	for _, extra := range items.Extras {
		params := ordering.ExtraParams{Qty: extra.Qty}
		code, err := resolve(enums.StockCategoryExtra, extra.ID)
		if err != nil {
			return nil, err
		}
		params.Code = code
		for _, sauce := range extra.FreeSauces {
			sauceCode, err := resolve(enums.StockCategorySauce, sauce)
			if err != nil {
				return nil, err
			}
			params.FreeSauces = append(params.FreeSauces, sauceCode)
		}
		lines = append(lines, replayLine{
			kind: "extra",
			call: func(ctx context.Context) error { return client.AddExtra(ctx, session, params) },
		})
	}

	for _, drink := range items.Drinks {
		code, err := resolve(enums.StockCategoryDrink, drink.ID)
		if err != nil {
			return nil, err
		}
		params := ordering.ItemParams{Code: code, Qty: drink.Qty}
		lines = append(lines, replayLine{
			kind: "drink",
			call: func(ctx context.Context) error { return client.AddDrink(ctx, session, params) },
		})
	}

	for _, dessert := range items.Desserts {
		code, err := resolve(enums.StockCategoryDessert, dessert.ID)
		if err != nil {
			return nil, err
		}
		params := ordering.ItemParams{Code: code, Qty: dessert.Qty}
		lines = append(lines, replayLine{
			kind: "dessert",
			call: func(ctx context.Context) error { return client.AddDessert(ctx, session, params) },
		})
	}

	return lines, nil
}

// replayAll issues every line concurrently, bounded by the semaphore, and
// waits for all of them to settle. Siblings are never canceled on failure.
// Returns the first failure in line order, plus every failure combined for
// logging.
func replayAll(ctx context.Context, lines []replayLine, concurrency int) (first, all error) {
	if concurrency < 1 {
		concurrency = 1
	}

	sem := make(chan struct{}, concurrency)
	errs := make([]error, len(lines))
	var wg sync.WaitGroup

	for i := range lines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			errs[i] = lines[i].call(ctx)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil && first == nil {
			first = err
		}
		all = multierr.Append(all, err)
	}
	return first, all
}
