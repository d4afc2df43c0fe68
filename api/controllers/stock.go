package controllers

import (
	"net/http"

	"github.com/maxscharwath/tacocrew-sub004/api/responses"
	"github.com/maxscharwath/tacocrew-sub004/internal/stock"
	"github.com/maxscharwath/tacocrew-sub004/pkg/logger"
)

// GetStock returns a live catalog snapshot. Every request hits the backend;
// nothing is cached.
func GetStock(stockService stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := stockService.Fetch(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}
