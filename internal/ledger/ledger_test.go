package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func income(id, date, category, amount string) models.Transaction {
	return models.Transaction{ID: id, Date: date, Category: category, Amount: dec(amount), Type: models.TransactionIncome}
}

func expense(id, date, category, amount string) models.Transaction {
	return models.Transaction{ID: id, Date: date, Category: category, Amount: dec(amount), Type: models.TransactionExpense}
}

func TestBalanceAndCategorize_Scenario(t *testing.T) {
	txs := []models.Transaction{
		income("1", "2025-01-01", "salary", "100"),
		expense("2", "2025-01-02", "food", "40"),
	}

	if got := Balance(txs); !got.Equal(dec("60")) {
		t.Errorf("Balance() = %s, want 60", got)
	}

	cats := Categorize(ByType(txs, models.TransactionExpense))
	if len(cats) != 1 || !cats["food"].Equal(dec("40")) {
		t.Errorf("Categorize(expenses) = %v, want {food: 40}", cats)
	}
}

func TestBalance_OrderIndependent(t *testing.T) {
	txs := []models.Transaction{
		income("1", "2025-01-01", "salary", "1200.50"),
		expense("2", "2025-01-02", "rent", "800"),
		expense("3", "2025-01-03", "food", "35.25"),
		income("4", "2025-01-04", "gift", "20"),
	}
	want := dec("385.25")

	reversed := make([]models.Transaction, len(txs))
	for i := range txs {
		reversed[len(txs)-1-i] = txs[i]
	}

	for name, in := range map[string][]models.Transaction{"forward": txs, "reversed": reversed} {
		if got := Balance(in); !got.Equal(want) {
			t.Errorf("%s: Balance() = %s, want %s", name, got, want)
		}
	}
}

func TestBalance_Empty(t *testing.T) {
	if got := Balance(nil); !got.IsZero() {
		t.Errorf("Balance(nil) = %s, want 0", got)
	}
}

func TestCategorize_SumMatchesLedger(t *testing.T) {
	txs := []models.Transaction{
		expense("1", "2025-01-01", "Food", "10"),
		expense("2", "2025-01-01", "food", "5.5"),
		expense("3", "2025-01-02", "food ", "1"),
		income("4", "2025-01-02", "Salary", "300"),
	}

	cats := Categorize(txs)
	if len(cats) != 4 {
		t.Errorf("expected 4 distinct categories (case and whitespace sensitive), got %d: %v", len(cats), cats)
	}

	sum := decimal.Zero
	for _, v := range cats {
		sum = sum.Add(v)
	}
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	if !sum.Equal(total) {
		t.Errorf("sum of categories = %s, want %s", sum, total)
	}
}

func TestAppend_DoesNotMutate(t *testing.T) {
	original := make([]models.Transaction, 1, 4)
	original[0] = income("1", "2025-01-01", "salary", "10")

	a := Append(original, expense("2", "2025-01-02", "food", "3"))
	b := Append(original, expense("3", "2025-01-02", "fuel", "4"))

	if len(original) != 1 {
		t.Fatalf("original length changed to %d", len(original))
	}
	if a[1].ID != "2" || b[1].ID != "3" {
		t.Errorf("appends aliased each other: a[1]=%s b[1]=%s", a[1].ID, b[1].ID)
	}
}

func TestFilterByCalendarDate(t *testing.T) {
	txs := []models.Transaction{
		expense("1", "2025-03-14", "food", "1"),
		expense("2", "2025-03-14T18:30:00Z", "food", "2"),
		expense("3", "2025-03-14T23:59:59+02:00", "food", "3"),
		expense("4", "2025-03-15", "food", "4"),
		expense("5", "not a date", "food", "5"),
		expense("6", "Mar 14, 2025", "food", "6"),
	}

	tests := []struct {
		name    string
		date    string
		wantIDs []string
	}{
		{"plain date", "2025-03-14", []string{"1", "2", "3", "6"}},
		{"timestamp target", "2025-03-14T08:00:00Z", []string{"1", "2", "3", "6"}},
		{"other day", "2025-03-15", []string{"4"}},
		{"no match", "2024-01-01", nil},
		{"unparsable target", "garbage", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByCalendarDate(txs, tt.date)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d transactions, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("result[%d].ID = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilterByDate_AddedTransactionAppears(t *testing.T) {
	var txs []models.Transaction
	for _, date := range []string{"2025-01-01", "2025-01-01T12:00:00Z", "01/05/2025", "Sun Jan 05 2025"} {
		tx := expense(date, date, "misc", "1")
		txs = Append(txs, tx)
		found := false
		for _, got := range FilterByDate(txs, tx.Date) {
			if got.ID == tx.ID {
				found = true
			}
		}
		if !found {
			t.Errorf("transaction dated %q not returned when filtering by its own date", date)
		}
	}
}

func TestBalanceDelta(t *testing.T) {
	in := income("1", "2025-01-01", "salary", "50")
	out := expense("2", "2025-01-01", "food", "20")

	running := decimal.Zero
	running = running.Add(BalanceDelta(in, false))
	running = running.Add(BalanceDelta(out, false))
	if !running.Equal(dec("30")) {
		t.Fatalf("running balance = %s, want 30", running)
	}
	running = running.Add(BalanceDelta(out, true))
	if !running.Equal(dec("50")) {
		t.Errorf("after removing expense = %s, want 50", running)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]models.Transaction{
		income("1", "2025-01-01", "salary", "100"),
		income("2", "2025-01-01", "bonus", "25"),
		expense("3", "2025-01-02", "food", "40"),
	})
	if !s.TotalIncome.Equal(dec("125")) || !s.TotalExpense.Equal(dec("40")) || !s.Balance.Equal(dec("85")) || s.Count != 3 {
		t.Errorf("Summarize() = %+v", s)
	}
}

func TestRemoveAndReplace(t *testing.T) {
	txs := []models.Transaction{
		income("1", "2025-01-01", "salary", "100"),
		expense("2", "2025-01-02", "food", "40"),
	}

	removed := Remove(txs, "2")
	if len(removed) != 1 || removed[0].ID != "1" {
		t.Errorf("Remove() = %v", removed)
	}
	if len(Remove(txs, "missing")) != 2 {
		t.Error("Remove() of absent id should be a no-op")
	}

	replaced := Replace(txs, expense("2", "2025-01-02", "food", "45"))
	if !replaced[1].Amount.Equal(dec("45")) {
		t.Errorf("Replace() amount = %s, want 45", replaced[1].Amount)
	}
	if !txs[1].Amount.Equal(dec("40")) {
		t.Error("Replace() mutated its input")
	}
}

func TestNormalizeDates(t *testing.T) {
	txs := []models.Transaction{
		expense("1", "2025-03-14T18:30:00Z", "food", "1"),
		expense("2", "03/15/2025", "food", "1"),
		expense("3", "someday", "food", "1"),
	}
	got := NormalizeDates(txs)
	want := []string{"2025-03-14", "2025-03-15", "someday"}
	for i, w := range want {
		if got[i].Date != w {
			t.Errorf("date[%d] = %q, want %q", i, got[i].Date, w)
		}
	}
	if txs[0].Date != "2025-03-14T18:30:00Z" {
		t.Error("NormalizeDates mutated its input")
	}
}
