// Package expense exposes trip expense endpoints.
package expense

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
	svc *service.ExpenseService
}

func NewHandler(svc *service.ExpenseService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/trips/{tripID}/expenses", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{expenseID}", h.get)
		r.Put("/{expenseID}", h.update)
		r.Delete("/{expenseID}", h.delete)
	})
}

type shareRequest struct {
	MemberID   string `json:"member_id"`
	Amount     int64  `json:"amount,omitempty"`
	PercentBps int64  `json:"percent_bps,omitempty"`
}

type expenseRequest struct {
	PayerID     string         `json:"payer_id"`
	Description string         `json:"description"`
	Category    string         `json:"category,omitempty"`
	Amount      int64          `json:"amount"`
	Currency    string         `json:"currency"`
	FxRate      string         `json:"fx_rate,omitempty"`
	Date        int64          `json:"date,omitempty"`
	Method      string         `json:"split_method"`
	Shares      []shareRequest `json:"shares"`
}

type shareResponse struct {
	MemberID         string `json:"member_id"`
	Amount           int64  `json:"amount"`
	NormalizedAmount int64  `json:"normalized_amount"`
	Method           string `json:"method"`
}

type expenseResponse struct {
	ID               string          `json:"id"`
	TripID           string          `json:"trip_id"`
	PayerID          string          `json:"payer_id"`
	Description      string          `json:"description"`
	Category         string          `json:"category,omitempty"`
	Amount           int64           `json:"amount"`
	Currency         string          `json:"currency"`
	FxRate           string          `json:"fx_rate"`
	NormalizedAmount int64           `json:"normalized_amount"`
	Date             int64           `json:"date"`
	Status           string          `json:"status"`
	CreatedAt        int64           `json:"created_at"`
	Shares           []shareResponse `json:"shares"`
	Unassigned       int64           `json:"unassigned,omitempty"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	resp := expenseResponse{
		ID:               e.ID,
		TripID:           e.TripID,
		PayerID:          e.PayerID,
		Description:      e.Description,
		Category:         e.Category,
		Amount:           e.Amount,
		Currency:         e.Currency,
		FxRate:           e.FxRate.String(),
		NormalizedAmount: e.NormalizedAmount,
		Date:             e.Date,
		Status:           string(e.Status),
		CreatedAt:        e.CreatedAt,
		Unassigned:       e.Unassigned(),
	}
	for _, sh := range e.Shares {
		resp.Shares = append(resp.Shares, shareResponse{
			MemberID:         sh.MemberID,
			Amount:           sh.Amount,
			NormalizedAmount: sh.NormalizedAmount,
			Method:           string(sh.Method),
		})
	}
	return resp
}

func toParams(req expenseRequest) service.CreateExpenseParams {
	params := service.CreateExpenseParams{
		PayerID:     req.PayerID,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Currency:    req.Currency,
		FxRate:      req.FxRate,
		Date:        req.Date,
		Method:      models.SplitMethod(req.Method),
	}
	if params.FxRate == "" {
		params.FxRate = "1"
	}
	for _, sh := range req.Shares {
		params.Shares = append(params.Shares, service.ShareInput{
			MemberID:   sh.MemberID,
			Amount:     sh.Amount,
			PercentBps: sh.PercentBps,
		})
	}
	return params
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	expense, err := h.svc.CreateExpense(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), toParams(req))
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListExpenses(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		respond.Err(w, err)
		return
	}

	resp := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, toExpenseResponse(e))
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	expense, err := h.svc.GetExpense(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "expenseID"))
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	expense, err := h.svc.UpdateExpense(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "expenseID"), toParams(req))
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteExpense(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "tripID"), chi.URLParam(r, "expenseID"))
	if err != nil {
		respond.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
