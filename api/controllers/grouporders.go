package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/maxscharwath/tacocrew-sub004/api/responses"
	"github.com/maxscharwath/tacocrew-sub004/api/validators"
	"github.com/maxscharwath/tacocrew-sub004/internal/grouporders"
	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
	pkgerrors "github.com/maxscharwath/tacocrew-sub004/pkg/errors"
	"github.com/maxscharwath/tacocrew-sub004/pkg/logger"
	"github.com/maxscharwath/tacocrew-sub004/pkg/types"
)

const maxGroupOrderNameLen = 120

type createGroupOrderRequest struct {
	LeaderID  uuid.UUID `json:"leader_id" validate:"required"`
	Name      string    `json:"name,omitempty"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

type updateGroupOrderRequest struct {
	Name      *string    `json:"name,omitempty"`
	Status    *string    `json:"status,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type upsertOrderRequest struct {
	UserID uuid.UUID        `json:"user_id" validate:"required"`
	Items  types.OrderItems `json:"items" validate:"required"`
}

func groupOrderID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "groupOrderID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid group order id")
	}
	return id, nil
}

func CreateGroupOrder(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGroupOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := grouporders.CreateGroupOrderInput{
			LeaderID:  req.LeaderID,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		}
		if name := validators.SanitizeString(req.Name, maxGroupOrderNameLen); name != "" {
			input.Name = &name
		}

		order, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func GetGroupOrder(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := groupOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func UpdateGroupOrder(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := groupOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateGroupOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := grouporders.UpdateGroupOrderInput{
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		}
		if req.Name != nil {
			name := validators.SanitizeString(*req.Name, maxGroupOrderNameLen)
			input.Name = &name
		}
		if req.Status != nil {
			status, err := enums.ParseGroupOrderStatus(*req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown group order status"))
				return
			}
			input.Status = &status
		}

		order, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// UpsertParticipantOrder replaces one participant's cart for the group.
func UpsertParticipantOrder(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := groupOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req upsertOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpsertUserOrder(r.Context(), id, grouporders.UpsertOrderInput{
			UserID: req.UserID,
			Items:  req.Items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
