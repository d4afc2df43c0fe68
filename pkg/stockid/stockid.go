// Package stockid derives stable internal identifiers for entries of the
// ordering backend's catalog. The backend keys its stock by short codes
// ("viande_hachee", "sauce_blanche") scoped to a category; clients need an
// id they can pick before submission that is still valid at submission time,
// without a round trip and without stored mapping state.
package stockid

import (
	"github.com/google/uuid"

	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
)

// Namespace anchors the UUIDv5 derivation. Changing it invalidates every id
// ever handed to a client.
var Namespace = uuid.MustParse("8a6e1f2d-43cb-4c5a-9d31-5bfe7a1d0b7c")

// ForCode maps an external (code, category) pair to its internal id. The
// mapping is pure and content-addressed: equal inputs always produce equal
// ids, across processes and restarts.
func ForCode(category enums.StockCategory, code string) uuid.UUID {
	return uuid.NewSHA1(Namespace, []byte(string(category)+"/"+code))
}
