// Package calculator computes member balances and suggested settlement
// transfers from a trip's expense ledger.
//
// Every function here is a pure transformation over caller-supplied data:
// no I/O, no framework types, no state between calls. All amounts are
// int64 minor units in the trip's base currency; callers normalize foreign
// currencies before handing expenses in. Output is deterministic for a
// given input, including tie-breaks.
package calculator

import "sort"

// SettledEpsilon is the tolerance, in minor units, below which a balance
// is treated as zero. One cent absorbs the rounding residue of equal
// splits without leaking spurious one-cent transfers.
const SettledEpsilon int64 = 1

// Expense is the minimal view of a ledger entry needed for balance math.
// Amount and share amounts are already normalized to the base currency.
type Expense struct {
	PayerID string
	Amount  int64
	Date    int64
	Shares  []Share
}

// Share is one member's portion of an expense.
type Share struct {
	MemberID string
	Amount   int64
}

// MemberBalance is the derived per-member position across all expenses.
type MemberBalance struct {
	MemberID  string
	TotalPaid int64 // sum of expense amounts this member paid
	TotalOwed int64 // sum of share amounts assigned to this member
	Net       int64 // TotalPaid - TotalOwed; positive = owed money
}

// ComputeBalances aggregates expenses into one balance per member.
//
// The payer of each expense is credited its full amount; each assignee is
// debited its share. Members with no activity do not appear in the result.
// Input is taken as-is: shares are not required to sum to the expense
// amount, and no numeric validation happens here. Empty input yields an
// empty slice.
//
// The result is sorted by member ID so identical ledgers always produce
// identical output.
func ComputeBalances(expenses []Expense) []MemberBalance {
	balances := make(map[string]*MemberBalance)

	get := func(memberID string) *MemberBalance {
		b, ok := balances[memberID]
		if !ok {
			b = &MemberBalance{MemberID: memberID}
			balances[memberID] = b
		}
		return b
	}

	for _, e := range expenses {
		if e.PayerID == "" {
			continue
		}
		get(e.PayerID).TotalPaid += e.Amount
		for _, s := range e.Shares {
			get(s.MemberID).TotalOwed += s.Amount
		}
	}

	out := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		b.Net = b.TotalPaid - b.TotalOwed
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemberID < out[j].MemberID })

	return out
}

// OldestDebts returns, per member, the earliest expense date at which that
// member owed a share on an expense someone else paid. Used to annotate
// transfers with "debt since" information; the transfer amounts do not
// depend on it.
func OldestDebts(expenses []Expense) map[string]int64 {
	oldest := make(map[string]int64)
	for _, e := range expenses {
		if e.PayerID == "" {
			continue
		}
		for _, s := range e.Shares {
			if s.MemberID == e.PayerID {
				continue
			}
			if t, ok := oldest[s.MemberID]; !ok || e.Date < t {
				oldest[s.MemberID] = e.Date
			}
		}
	}
	return oldest
}
