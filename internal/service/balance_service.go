package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/roamly/roamly/internal/calculator"
	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

// BalanceService produces the on-demand balance report for a trip. It
// fetches the ledger, hands it to the pure calculator and assembles the
// result; nothing here is ever persisted.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage
// backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// MemberBalanceReport is one roster entry's position in the report.
type MemberBalanceReport struct {
	MemberID   string
	MemberName string
	TotalPaid  int64
	TotalOwed  int64
	NetBalance int64
}

// TransferReport is one suggested settlement transfer.
type TransferReport struct {
	FromMemberID string
	ToMemberID   string
	Amount       int64
	// OldestDebtDate is the Unix date of the debtor's oldest contributing
	// expense, zero if unknown.
	OldestDebtDate int64
}

// BalanceReport is the full serializable result of a balance calculation.
type BalanceReport struct {
	TripID       string
	BaseCurrency string
	TotalSpent   int64
	Balances     []MemberBalanceReport
	Settlements  []TransferReport
	CalculatedAt int64
}

// Report computes the trip's balance report from the current ledger.
// The calculator omits members with no activity; the report unions its
// output with the roster so every member shows up, settled members with
// zeros.
func (s *BalanceService) Report(ctx context.Context, userID, tripID string) (*BalanceReport, error) {
	trip, members, err := authorizeTrip(ctx, s.store, userID, tripID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	ledger := toLedger(expenses)
	balances := calculator.ComputeBalances(ledger)
	transfers, err := calculator.ComputeTransfers(balances, calculator.OldestDebts(ledger))
	if err != nil {
		// Only reachable through a calculator logic error; surface it
		// rather than returning a half-built report.
		slog.Error("balance calculation failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	report := &BalanceReport{
		TripID:       trip.ID,
		BaseCurrency: trip.BaseCurrency,
		CalculatedAt: time.Now().Unix(),
	}
	for _, e := range expenses {
		report.TotalSpent += e.NormalizedAmount
	}

	byMember := make(map[string]calculator.MemberBalance, len(balances))
	for _, b := range balances {
		byMember[b.MemberID] = b
	}
	for _, m := range members {
		b := byMember[m.ID] // zero value for members with no activity
		report.Balances = append(report.Balances, MemberBalanceReport{
			MemberID:   m.ID,
			MemberName: m.Name,
			TotalPaid:  b.TotalPaid,
			TotalOwed:  b.TotalOwed,
			NetBalance: b.Net,
		})
	}

	for _, t := range transfers {
		report.Settlements = append(report.Settlements, TransferReport{
			FromMemberID:   t.FromID,
			ToMemberID:     t.ToID,
			Amount:         t.Amount,
			OldestDebtDate: t.OldestDebt,
		})
	}

	return report, nil
}

// toLedger maps persisted expenses into the calculator's normalized view.
func toLedger(expenses []*models.Expense) []calculator.Expense {
	ledger := make([]calculator.Expense, 0, len(expenses))
	for _, e := range expenses {
		ce := calculator.Expense{
			PayerID: e.PayerID,
			Amount:  e.NormalizedAmount,
			Date:    e.Date,
		}
		for _, sh := range e.Shares {
			ce.Shares = append(ce.Shares, calculator.Share{
				MemberID: sh.MemberID,
				Amount:   sh.NormalizedAmount,
			})
		}
		ledger = append(ledger, ce)
	}
	return ledger
}
