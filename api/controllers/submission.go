package controllers

import (
	"net/http"

	"github.com/maxscharwath/tacocrew-sub004/api/responses"
	"github.com/maxscharwath/tacocrew-sub004/api/validators"
	"github.com/maxscharwath/tacocrew-sub004/internal/submission"
	"github.com/maxscharwath/tacocrew-sub004/pkg/logger"
	"github.com/maxscharwath/tacocrew-sub004/pkg/types"
)

type submitGroupOrderRequest struct {
	Customer types.Customer `json:"customer" validate:"required"`
	Delivery types.Delivery `json:"delivery" validate:"required"`
}

// SubmitGroupOrder hands the whole group order to the external backend.
// The route sits behind the idempotency middleware: retried requests with
// the same key replay the stored response instead of double-ordering.
func SubmitGroupOrder(svc submission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := groupOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req submitGroupOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), id, submission.SubmitInput{
			Customer: req.Customer,
			Delivery: req.Delivery,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
