package calculator

import "fmt"

// Transfer is a suggested payment from one member to another. Transfers
// are derived fresh on every calculation and never persisted.
type Transfer struct {
	FromID string
	ToID   string
	Amount int64

	// OldestDebt is the earliest Unix date among the debtor's contributing
	// expenses, or zero when unknown. Reporting only.
	OldestDebt int64
}

// ComputeTransfers reduces net balances to a list of point-to-point
// transfers that settle all debts, using greedy largest-first matching:
// repeatedly pair the largest remaining debtor with the largest remaining
// creditor and transfer the smaller of the two magnitudes. Ties on equal
// balances break by member ID ascending, so identical inputs always yield
// the same transfer list in the same order.
//
// Members within SettledEpsilon of zero are excluded up front and dropped
// as soon as their remainder falls within it, which bounds the result at
// n-1 transfers for n unsettled members. The greedy policy is not always
// minimal in transfer count; it is kept for its determinism and because
// downstream presentation counts on it.
//
// oldestDebt may be nil; when present (see OldestDebts) each transfer is
// annotated with the debtor's oldest contributing expense date.
func ComputeTransfers(balances []MemberBalance, oldestDebt map[string]int64) ([]Transfer, error) {
	type party struct {
		id        string
		remaining int64 // always positive
	}

	var debtors, creditors []party
	for _, b := range balances {
		switch {
		case b.Net > SettledEpsilon:
			creditors = append(creditors, party{id: b.MemberID, remaining: b.Net})
		case b.Net < -SettledEpsilon:
			debtors = append(debtors, party{id: b.MemberID, remaining: -b.Net})
		}
	}

	// largest returns the index of the party with the biggest remainder,
	// breaking ties by member ID.
	largest := func(parties []party) int {
		best := 0
		for i := 1; i < len(parties); i++ {
			if parties[i].remaining > parties[best].remaining ||
				(parties[i].remaining == parties[best].remaining && parties[i].id < parties[best].id) {
				best = i
			}
		}
		return best
	}

	drop := func(parties []party, i int) []party {
		return append(parties[:i], parties[i+1:]...)
	}

	var transfers []Transfer

	// Each iteration settles at least one party, so the loop runs at most
	// debtors+creditors times. The cap only trips on a logic error.
	maxIterations := len(debtors) + len(creditors)
	for iter := 0; len(debtors) > 0 && len(creditors) > 0; iter++ {
		if iter > maxIterations {
			return nil, fmt.Errorf("settlement reduction did not converge after %d iterations", iter)
		}

		di := largest(debtors)
		ci := largest(creditors)
		debtor := &debtors[di]
		creditor := &creditors[ci]

		amount := debtor.remaining
		if creditor.remaining < amount {
			amount = creditor.remaining
		}

		transfers = append(transfers, Transfer{
			FromID:     debtor.id,
			ToID:       creditor.id,
			Amount:     amount,
			OldestDebt: oldestDebt[debtor.id],
		})

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining <= SettledEpsilon {
			debtors = drop(debtors, di)
		}
		if creditor.remaining <= SettledEpsilon {
			creditors = drop(creditors, ci)
		}
	}

	return transfers, nil
}
