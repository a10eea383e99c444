// Package balance exposes the on-demand balance report endpoint.
package balance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roamly/roamly/internal/http/respond"
	"github.com/roamly/roamly/internal/middleware"
	"github.com/roamly/roamly/internal/service"
)

type Handler struct {
	svc *service.BalanceService
}

func NewHandler(svc *service.BalanceService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/trips/{tripID}/balances", h.report)
}

type memberBalanceResponse struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	TotalPaid  int64  `json:"total_paid"`
	TotalOwed  int64  `json:"total_owed"`
	NetBalance int64  `json:"net_balance"`
}

type transferResponse struct {
	FromMemberID   string `json:"from_member_id"`
	ToMemberID     string `json:"to_member_id"`
	Amount         int64  `json:"amount"`
	OldestDebtDate int64  `json:"oldest_debt_date,omitempty"`
}

type reportResponse struct {
	TripID       string                  `json:"trip_id"`
	BaseCurrency string                  `json:"base_currency"`
	TotalSpent   int64                   `json:"total_spent"`
	Balances     []memberBalanceResponse `json:"balances"`
	Settlements  []transferResponse      `json:"settlements"`
	CalculatedAt int64                   `json:"calculated_at"`
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Report(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		respond.Err(w, err)
		return
	}

	resp := reportResponse{
		TripID:       report.TripID,
		BaseCurrency: report.BaseCurrency,
		TotalSpent:   report.TotalSpent,
		Balances:     make([]memberBalanceResponse, 0, len(report.Balances)),
		Settlements:  make([]transferResponse, 0, len(report.Settlements)),
		CalculatedAt: report.CalculatedAt,
	}
	for _, b := range report.Balances {
		resp.Balances = append(resp.Balances, memberBalanceResponse{
			MemberID:   b.MemberID,
			MemberName: b.MemberName,
			TotalPaid:  b.TotalPaid,
			TotalOwed:  b.TotalOwed,
			NetBalance: b.NetBalance,
		})
	}
	for _, t := range report.Settlements {
		resp.Settlements = append(resp.Settlements, transferResponse{
			FromMemberID:   t.FromMemberID,
			ToMemberID:     t.ToMemberID,
			Amount:         t.Amount,
			OldestDebtDate: t.OldestDebtDate,
		})
	}
	respond.JSON(w, http.StatusOK, resp)
}
