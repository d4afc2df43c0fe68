// Package stock exposes the ordering backend's live catalog under stable
// internal identifiers and validates carts against it.
package stock

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
	"github.com/maxscharwath/tacocrew-sub004/pkg/ordering"
	"github.com/maxscharwath/tacocrew-sub004/pkg/stockid"
)

// Entry is one catalog line under its derived internal id.
type Entry struct {
	ID      uuid.UUID       `json:"id"`
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	InStock bool            `json:"in_stock"`
}

// Snapshot is one point-in-time view of the live catalog. It is never
// cached: every snapshot comes from a fresh backend fetch, and stock may
// have changed the moment it returns.
type Snapshot struct {
	Meats     []Entry `json:"meats"`
	Sauces    []Entry `json:"sauces"`
	Garnishes []Entry `json:"garnishes"`
	Extras    []Entry `json:"extras"`
	Drinks    []Entry `json:"drinks"`
	Desserts  []Entry `json:"desserts"`

	index map[enums.StockCategory]map[uuid.UUID]*Entry
}

// Find resolves an internal id inside one category bucket.
func (s *Snapshot) Find(category enums.StockCategory, id uuid.UUID) (*Entry, bool) {
	if s == nil || s.index == nil {
		return nil, false
	}
	entry, ok := s.index[category][id]
	return entry, ok
}

type catalogFetcher interface {
	FetchStock(ctx context.Context) (*ordering.RawStock, error)
}

// Service retrieves live catalog snapshots.
type Service interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

type service struct {
	backend catalogFetcher
}

// NewService builds the stock gateway on top of the ordering backend client.
func NewService(backend catalogFetcher) (Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("ordering backend client required")
	}
	return &service{backend: backend}, nil
}

func (s *service) Fetch(ctx context.Context) (*Snapshot, error) {
	raw, err := s.backend.FetchStock(ctx)
	if err != nil {
		return nil, err
	}
	return buildSnapshot(raw), nil
}

func buildSnapshot(raw *ordering.RawStock) *Snapshot {
	snapshot := &Snapshot{
		Meats:     buildBucket(enums.StockCategoryMeat, raw.Meats),
		Sauces:    buildBucket(enums.StockCategorySauce, raw.Sauces),
		Garnishes: buildBucket(enums.StockCategoryGarnish, raw.Garnishes),
		Extras:    buildBucket(enums.StockCategoryExtra, raw.Extras),
		Drinks:    buildBucket(enums.StockCategoryDrink, raw.Drinks),
		Desserts:  buildBucket(enums.StockCategoryDessert, raw.Desserts),
	}

	snapshot.index = map[enums.StockCategory]map[uuid.UUID]*Entry{
		enums.StockCategoryMeat:    indexBucket(snapshot.Meats),
		enums.StockCategorySauce:   indexBucket(snapshot.Sauces),
		enums.StockCategoryGarnish: indexBucket(snapshot.Garnishes),
		enums.StockCategoryExtra:   indexBucket(snapshot.Extras),
		enums.StockCategoryDrink:   indexBucket(snapshot.Drinks),
		enums.StockCategoryDessert: indexBucket(snapshot.Desserts),
	}
	return snapshot
}

func buildBucket(category enums.StockCategory, entries map[string]ordering.RawStockEntry) []Entry {
	bucket := make([]Entry, 0, len(entries))
	for code, entry := range entries {
		bucket = append(bucket, Entry{
			ID:      stockid.ForCode(category, code),
			Code:    code,
			Name:    entry.Name,
			Price:   decimal.NewFromFloat(entry.Price),
			InStock: entry.InStock,
		})
	}
	sort.Slice(bucket, func(i, j int) bool { return bucket[i].Code < bucket[j].Code })
	return bucket
}

func indexBucket(entries []Entry) map[uuid.UUID]*Entry {
	index := make(map[uuid.UUID]*Entry, len(entries))
	for i := range entries {
		index[entries[i].ID] = &entries[i]
	}
	return index
}
