package calculator

import "fmt"

// SplitEqual divides total minor units evenly across n members. The
// remainder cents go to the first entries, so the parts always sum to
// total exactly (e.g., 100.00 across three becomes 33.34/33.33/33.33).
func SplitEqual(total int64, n int) ([]int64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("must split among at least one member")
	}

	base := total / int64(n)
	rem := total % int64(n)

	parts := make([]int64, n)
	for i := range parts {
		parts[i] = base
		if int64(i) < rem {
			parts[i]++
		}
	}
	return parts, nil
}

// SplitPercent divides total minor units by basis points (1% = 100 bps).
// Each share rounds half-up; percentages need not sum to 100%, matching
// the tolerance for over/under-assigned expenses.
func SplitPercent(total int64, bps []int64) ([]int64, error) {
	if len(bps) == 0 {
		return nil, fmt.Errorf("must split among at least one member")
	}

	parts := make([]int64, len(bps))
	for i, b := range bps {
		if b < 0 {
			return nil, fmt.Errorf("negative percentage at index %d", i)
		}
		parts[i] = (total*b + 5000) / 10000
	}
	return parts, nil
}
