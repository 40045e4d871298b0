package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

var tolerance = decimal.New(1, -9)

func approx(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

func pcts(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func TestSplitExpense(t *testing.T) {
	tests := []struct {
		name         string
		amount       decimal.Decimal
		members      []string
		method       Method
		percentages  []decimal.Decimal
		opts         SplitOptions
		wantErr      error
		validateFunc func(t *testing.T, result SplitResult)
	}{
		{
			name:    "equal split among three",
			amount:  decimal.NewFromInt(30),
			members: []string{"A", "B", "C"},
			method:  MethodEqual,
			validateFunc: func(t *testing.T, result SplitResult) {
				for _, m := range []string{"A", "B", "C"} {
					if !result[m].Equal(decimal.NewFromInt(10)) {
						t.Errorf("%s share = %s, want 10", m, result[m])
					}
				}
			},
		},
		{
			name:    "equal split with repeating decimal sums to amount",
			amount:  decimal.NewFromInt(100),
			members: []string{"A", "B", "C"},
			method:  MethodEqual,
			validateFunc: func(t *testing.T, result SplitResult) {
				if !approx(result.Sum(), decimal.NewFromInt(100)) {
					t.Errorf("sum = %s, want 100 within 1e-9", result.Sum())
				}
				if !result["A"].Equal(result["B"]) || !result["B"].Equal(result["C"]) {
					t.Errorf("shares differ: %v", result)
				}
			},
		},
		{
			name:        "percentage split",
			amount:      decimal.NewFromInt(100),
			members:     []string{"A", "B"},
			method:      MethodPercentage,
			percentages: pcts(30, 70),
			validateFunc: func(t *testing.T, result SplitResult) {
				if !result["A"].Equal(decimal.NewFromInt(30)) {
					t.Errorf("A share = %s, want 30", result["A"])
				}
				if !result["B"].Equal(decimal.NewFromInt(70)) {
					t.Errorf("B share = %s, want 70", result["B"])
				}
			},
		},
		{
			name:        "percentages not summing to 100 are trusted",
			amount:      decimal.NewFromInt(200),
			members:     []string{"A", "B"},
			method:      MethodPercentage,
			percentages: pcts(10, 20),
			validateFunc: func(t *testing.T, result SplitResult) {
				if !result.Sum().Equal(decimal.NewFromInt(60)) {
					t.Errorf("sum = %s, want 60", result.Sum())
				}
			},
		},
		{
			name:        "missing percentage owes nothing",
			amount:      decimal.NewFromInt(50),
			members:     []string{"A", "B"},
			method:      MethodPercentage,
			percentages: pcts(100),
			validateFunc: func(t *testing.T, result SplitResult) {
				if !result["B"].IsZero() {
					t.Errorf("B share = %s, want 0", result["B"])
				}
			},
		},
		{
			name:        "strict mode rejects bad sum",
			amount:      decimal.NewFromInt(100),
			members:     []string{"A", "B"},
			method:      MethodPercentage,
			percentages: pcts(30, 60),
			opts:        SplitOptions{Strict: true},
			wantErr:     ErrPercentageMismatch,
		},
		{
			name:        "strict mode rejects misaligned percentages",
			amount:      decimal.NewFromInt(100),
			members:     []string{"A", "B"},
			method:      MethodPercentage,
			percentages: pcts(100),
			opts:        SplitOptions{Strict: true},
			wantErr:     ErrPercentageMismatch,
		},
		{
			name:        "strict mode accepts valid percentages",
			amount:      decimal.NewFromInt(80),
			members:     []string{"A", "B"},
			method:      MethodPercentage,
			percentages: pcts(25, 75),
			opts:        SplitOptions{Strict: true},
			validateFunc: func(t *testing.T, result SplitResult) {
				if !result["B"].Equal(decimal.NewFromInt(60)) {
					t.Errorf("B share = %s, want 60", result["B"])
				}
			},
		},
		{
			name:    "unknown method",
			amount:  decimal.NewFromInt(10),
			members: []string{"A"},
			method:  Method("unknown"),
			wantErr: ErrUnsupportedSplitMethod,
		},
		{
			name:    "no members",
			amount:  decimal.NewFromInt(10),
			members: []string{},
			method:  MethodEqual,
			wantErr: ErrEmptyMemberSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SplitExpense(tt.amount, tt.members, tt.method, tt.percentages, tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SplitExpense() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitExpense() unexpected error: %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, result)
			}
		})
	}
}

func TestSplitExpense_EqualProperty(t *testing.T) {
	amounts := []string{"0", "0.01", "1", "10", "99.99", "1234.567", "1000000"}
	for _, a := range amounts {
		amount := decimal.RequireFromString(a)
		for n := 1; n <= 12; n++ {
			members := make([]string, n)
			for i := range members {
				members[i] = string(rune('A' + i))
			}
			result, err := SplitExpense(amount, members, MethodEqual, nil, SplitOptions{})
			if err != nil {
				t.Fatalf("amount %s, n=%d: %v", a, n, err)
			}
			want := amount.Div(decimal.NewFromInt(int64(n)))
			for m, share := range result {
				if !share.Equal(want) {
					t.Errorf("amount %s, n=%d: %s share = %s, want %s", a, n, m, share, want)
				}
			}
			if !approx(result.Sum(), amount) {
				t.Errorf("amount %s, n=%d: sum = %s", a, n, result.Sum())
			}
		}
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"", MethodEqual, false},
		{"equal", MethodEqual, false},
		{"Percentage", MethodPercentage, false},
		{"shares", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMethod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupportedSplitMethod) {
			t.Errorf("ParseMethod(%q) error = %v, want ErrUnsupportedSplitMethod", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
