package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
)

// MeatPortion is one meat pick on a taco with its quantity.
type MeatPortion struct {
	ID  uuid.UUID `json:"id"`
	Qty int       `json:"qty"`
}

// TacoLine is one composed taco in a participant's cart.
type TacoLine struct {
	Size      enums.TacoSize `json:"size"`
	Meats     []MeatPortion  `json:"meats"`
	Sauces    []uuid.UUID    `json:"sauces"`
	Garnishes []uuid.UUID    `json:"garnishes"`
	Note      *string        `json:"note,omitempty"`
	Qty       int            `json:"qty"`
}

// ExtraLine is an extra with its optional free-sauce grants.
type ExtraLine struct {
	ID         uuid.UUID   `json:"id"`
	Qty        int         `json:"qty"`
	FreeSauces []uuid.UUID `json:"free_sauces,omitempty"`
}

// DrinkLine is a drink pick.
type DrinkLine struct {
	ID  uuid.UUID `json:"id"`
	Qty int       `json:"qty"`
}

// DessertLine is a dessert pick.
type DessertLine struct {
	ID  uuid.UUID `json:"id"`
	Qty int       `json:"qty"`
}

// OrderItems is the items structure shared by the per-user cart and the
// merged submission cart, persisted as JSONB.
type OrderItems struct {
	Tacos    []TacoLine    `json:"tacos"`
	Extras   []ExtraLine   `json:"extras"`
	Drinks   []DrinkLine   `json:"drinks"`
	Desserts []DessertLine `json:"desserts"`
}

// IsEmpty reports whether the cart has no line items in any category.
func (o OrderItems) IsEmpty() bool {
	return len(o.Tacos) == 0 && len(o.Extras) == 0 && len(o.Drinks) == 0 && len(o.Desserts) == 0
}

// LineCount is the number of replay calls the cart will produce.
func (o OrderItems) LineCount() int {
	return len(o.Tacos) + len(o.Extras) + len(o.Drinks) + len(o.Desserts)
}

// Value serializes the items to JSON.
func (o OrderItems) Value() (driver.Value, error) {
	return json.Marshal(o)
}

// Scan decodes JSONB into the items structure.
func (o *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*o = OrderItems{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded OrderItems
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*o = decoded
	return nil
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
