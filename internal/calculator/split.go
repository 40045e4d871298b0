package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnsupportedSplitMethod is returned for any method other than equal or percentage.
	ErrUnsupportedSplitMethod = errors.New("unsupported split method")

	// ErrEmptyMemberSet is returned when there is nobody to split between.
	ErrEmptyMemberSet = errors.New("cannot split among zero members")

	// ErrPercentageMismatch is returned in strict mode when percentages are not
	// aligned with members or do not sum to 100.
	ErrPercentageMismatch = errors.New("percentages must align with members and sum to 100")
)

// Method selects how an expense is divided.
type Method string

const (
	MethodEqual      Method = "equal"
	MethodPercentage Method = "percentage"
)

// ParseMethod maps a user-supplied method name onto a Method. Empty means equal.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case "", MethodEqual:
		return MethodEqual, nil
	case MethodPercentage:
		return MethodPercentage, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedSplitMethod, s)
	}
}

// SplitResult maps a member ID to the share that member owes.
type SplitResult map[string]decimal.Decimal

// Sum adds all shares.
func (r SplitResult) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, share := range r {
		total = total.Add(share)
	}
	return total
}

// SplitOptions tunes SplitExpense.
type SplitOptions struct {
	// Strict rejects percentage splits whose percentages are not one per member
	// or do not add up to exactly 100.
	Strict bool
}

var hundred = decimal.NewFromInt(100)

// SplitExpense divides amount among members.
//
// Equal: every member owes amount / len(members).
// Percentage: member i owes amount * percentages[i] / 100. Outside strict mode
// the percentages are trusted as given and a member without a percentage owes
// nothing.
func SplitExpense(amount decimal.Decimal, members []string, method Method, percentages []decimal.Decimal, opts SplitOptions) (SplitResult, error) {
	if method != MethodEqual && method != MethodPercentage {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSplitMethod, method)
	}
	if len(members) == 0 {
		return nil, ErrEmptyMemberSet
	}

	result := make(SplitResult, len(members))

	if method == MethodEqual {
		share := amount.Div(decimal.NewFromInt(int64(len(members))))
		for _, m := range members {
			result[m] = share
		}
		return result, nil
	}

	if opts.Strict {
		if err := validatePercentages(members, percentages); err != nil {
			return nil, err
		}
	}
	for i, m := range members {
		pct := decimal.Zero
		if i < len(percentages) {
			pct = percentages[i]
		}
		result[m] = amount.Mul(pct).Div(hundred)
	}
	return result, nil
}

func validatePercentages(members []string, percentages []decimal.Decimal) error {
	if len(percentages) != len(members) {
		return fmt.Errorf("%w: got %d percentages for %d members", ErrPercentageMismatch, len(percentages), len(members))
	}
	sum := decimal.Zero
	for _, p := range percentages {
		sum = sum.Add(p)
	}
	if !sum.Equal(hundred) {
		return fmt.Errorf("%w: sum is %s", ErrPercentageMismatch, sum)
	}
	return nil
}
