package submission

import (
	"github.com/maxscharwath/tacocrew-sub004/pkg/db/models"
	"github.com/maxscharwath/tacocrew-sub004/pkg/types"
)

// mergeItems combines every participant's cart into one submission cart by
// plain concatenation per category. No de-duplication: two participants
// ordering the same taco produce two line items.
func mergeItems(orders []models.UserOrder) types.OrderItems {
	var merged types.OrderItems
	for _, order := range orders {
		merged.Tacos = append(merged.Tacos, order.Items.Tacos...)
		merged.Extras = append(merged.Extras, order.Items.Extras...)
		merged.Drinks = append(merged.Drinks, order.Items.Drinks...)
		merged.Desserts = append(merged.Desserts, order.Items.Desserts...)
	}
	return merged
}
