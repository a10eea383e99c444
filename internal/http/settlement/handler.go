// Package settlement exposes settlement and payment endpoints.
package settlement

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
	svc *service.SettlementService
}

func NewHandler(svc *service.SettlementService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/trips/{tripID}/settlements", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Post("/{settlementID}/payments", h.recordPayment)
		r.Delete("/{settlementID}", h.delete)
	})
}

type settlementRequest struct {
	FromMemberID string `json:"from_member_id"`
	ToMemberID   string `json:"to_member_id"`
	Amount       int64  `json:"amount"`
	Note         string `json:"note,omitempty"`
}

type paymentRequest struct {
	Amount int64 `json:"amount"`
}

type paymentResponse struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	CreatedAt int64  `json:"created_at"`
}

type settlementResponse struct {
	ID           string            `json:"id"`
	TripID       string            `json:"trip_id"`
	FromMemberID string            `json:"from_member_id"`
	ToMemberID   string            `json:"to_member_id"`
	Amount       int64             `json:"amount"`
	Note         string            `json:"note,omitempty"`
	Paid         int64             `json:"paid"`
	Remaining    int64             `json:"remaining"`
	Payments     []paymentResponse `json:"payments"`
	CreatedAt    int64             `json:"created_at"`
}

func toSettlementResponse(s *models.Settlement) settlementResponse {
	resp := settlementResponse{
		ID:           s.ID,
		TripID:       s.TripID,
		FromMemberID: s.FromMemberID,
		ToMemberID:   s.ToMemberID,
		Amount:       s.Amount,
		Note:         s.Note,
		Paid:         s.Paid(),
		Remaining:    s.Remaining(),
		Payments:     make([]paymentResponse, 0, len(s.Payments)),
		CreatedAt:    s.CreatedAt,
	}
	for _, p := range s.Payments {
		resp.Payments = append(resp.Payments, paymentResponse{
			ID:        p.ID,
			Amount:    p.Amount,
			CreatedAt: p.CreatedAt,
		})
	}
	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	params := service.CreateSettlementParams{
		FromMemberID: req.FromMemberID,
		ToMemberID:   req.ToMemberID,
		Amount:       req.Amount,
		Note:         req.Note,
	}
	settlement, err := h.svc.CreateSettlement(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), params)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toSettlementResponse(settlement))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.svc.ListSettlements(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		respond.Err(w, err)
		return
	}

	resp := make([]settlementResponse, 0, len(settlements))
	for _, s := range settlements {
		resp = append(resp, toSettlementResponse(s))
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	settlement, err := h.svc.RecordPayment(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "settlementID"), req.Amount)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toSettlementResponse(settlement))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteSettlement(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "settlementID"))
	if err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
