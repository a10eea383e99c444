// Package kit exposes packing-list endpoints.
package kit

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roamly/roamly/internal/http/respond"
	"github.com/roamly/roamly/internal/middleware"
	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/service"
)

type Handler struct {
	svc *service.KitService
}

func NewHandler(svc *service.KitService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/trips/{tripID}/kit", func(r chi.Router) {
		r.Post("/", h.add)
		r.Get("/", h.list)
		r.Patch("/{itemID}", h.update)
		r.Delete("/{itemID}", h.delete)
	})
}

type itemRequest struct {
	Name       *string `json:"name"`
	Quantity   *int    `json:"quantity"`
	AssigneeID *string `json:"assignee_id"`
	Packed     *bool   `json:"packed"`
}

type itemResponse struct {
	ID         string `json:"id"`
	TripID     string `json:"trip_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	AssigneeID string `json:"assignee_id,omitempty"`
	Packed     bool   `json:"packed"`
	CreatedAt  int64  `json:"created_at"`
}

func toItemResponse(i *models.KitItem) itemResponse {
	return itemResponse{
		ID:         i.ID,
		TripID:     i.TripID,
		Name:       i.Name,
		Quantity:   i.Quantity,
		AssigneeID: i.AssigneeID,
		Packed:     i.Packed,
		CreatedAt:  i.CreatedAt,
	}
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	params := service.AddItemParams{Quantity: 1}
	if req.Name != nil {
		params.Name = *req.Name
	}
	if req.Quantity != nil {
		params.Quantity = *req.Quantity
	}
	if req.AssigneeID != nil {
		params.AssigneeID = *req.AssigneeID
	}

	item, err := h.svc.AddItem(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "tripID"), params)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toItemResponse(item))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		respond.Err(w, err)
		return
	}

	resp := make([]itemResponse, 0, len(items))
	for _, i := range items {
		resp = append(resp, toItemResponse(i))
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	params := service.UpdateItemParams{
		Name:       req.Name,
		Quantity:   req.Quantity,
		AssigneeID: req.AssigneeID,
		Packed:     req.Packed,
	}
	item, err := h.svc.UpdateItem(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "itemID"), params)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteItem(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "itemID"))
	if err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
