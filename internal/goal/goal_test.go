package goal

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/ids"
	"github.com/mmynk/fintrack/internal/models"
)

var now = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestTracker() *Tracker {
	return NewTracker(ids.NewSequence("goal"), ids.FixedClock(now))
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCreate(t *testing.T) {
	tr := newTestTracker()

	g, err := tr.Create("alice", d(500), time.Date(2024, 12, 31, 18, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID != "goal-1" || g.Owner != "alice" {
		t.Errorf("unexpected goal: %+v", g)
	}
	if !g.CurrentAmount.IsZero() || g.Status != models.GoalInProgress {
		t.Errorf("new goal should be empty and in progress: %+v", g)
	}
	if !g.Deadline.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("deadline = %v, want calendar date", g.Deadline)
	}
}

func TestCreate_InvalidTarget(t *testing.T) {
	for _, target := range []decimal.Decimal{d(0), d(-10)} {
		if _, err := newTestTracker().Create("alice", target, now); !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("Create(target=%s) error = %v, want ErrInvalidTarget", target, err)
		}
	}
}

func TestContributions(t *testing.T) {
	tr := newTestTracker()
	g, _ := tr.Create("alice", d(500), now.AddDate(0, 1, 0))

	g1 := tr.ApplyContribution(g, d(200))
	if !g1.CurrentAmount.Equal(d(200)) || g1.Status != models.GoalInProgress || !Progress(g1).Equal(d(40)) {
		t.Errorf("after 200: current=%s status=%s progress=%s", g1.CurrentAmount, g1.Status, Progress(g1))
	}
	if !g.CurrentAmount.IsZero() {
		t.Error("ApplyContribution mutated its input")
	}

	g2 := tr.ApplyContribution(g1, d(350))
	if !g2.CurrentAmount.Equal(d(550)) || g2.Status != models.GoalAchieved || !Progress(g2).Equal(d(100)) {
		t.Errorf("after 350: current=%s status=%s progress=%s", g2.CurrentAmount, g2.Status, Progress(g2))
	}

	g3 := tr.ApplyContribution(g2, d(-100))
	if g3.Status != models.GoalInProgress || !g3.CurrentAmount.Equal(d(450)) {
		t.Errorf("after withdrawal: current=%s status=%s", g3.CurrentAmount, g3.Status)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name    string
		current decimal.Decimal
		want    decimal.Decimal
	}{
		{"zero", d(0), d(0)},
		{"quarter", d(25), d(25)},
		{"exact", d(100), d(100)},
		{"over target clamps", d(1000), d(100)},
		{"negative clamps", d(-5), d(0)},
		{"shortfall below division precision", decimal.RequireFromString("99.99999999999999999999"), almostHundred},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := models.Goal{TargetAmount: d(100), CurrentAmount: tt.current}
			got := Progress(g)
			if !got.Equal(tt.want) {
				t.Errorf("Progress() = %s, want %s", got, tt.want)
			}
			achieved := Status(g) == models.GoalAchieved
			if achieved != got.GreaterThanOrEqual(d(100)) {
				t.Errorf("status %s inconsistent with progress %s", Status(g), got)
			}
		})
	}
}

func TestProgress_AchievedIffHundred(t *testing.T) {
	target := d(1)
	for _, raw := range []string{
		"0",
		"0.5",
		"0.9999999999999999",
		"0.99999999999999999999",
		"0.999999999999999999999999999999",
		"1",
		"1.00000000000000000001",
		"3",
	} {
		g := ApplyContribution(models.Goal{TargetAmount: target, Status: models.GoalInProgress}, decimal.RequireFromString(raw))
		achieved := g.Status == models.GoalAchieved
		if got := Progress(g); achieved != got.Equal(hundred) {
			t.Errorf("contribution %s: status %s but progress %s", raw, g.Status, got)
		}
	}
}

func TestDaysRemaining(t *testing.T) {
	deadline := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	g := models.Goal{Deadline: deadline}

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"midnight", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 9},
		{"time of day is ignored", time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC), 9},
		{"late evening", time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC), 1},
		{"deadline day", deadline, 0},
		{"passed", time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(g, tt.today); got != tt.want {
				t.Errorf("DaysRemaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAveragePerDay(t *testing.T) {
	g := models.Goal{TargetAmount: d(1000), Deadline: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)}
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	avg, ok := AveragePerDay(g, d(400), today)
	if !ok || !avg.Equal(d(60)) {
		t.Errorf("AveragePerDay() = %s, %v, want 60, true", avg, ok)
	}

	avg, ok = AveragePerDay(g, d(0), time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC))
	if !ok || !avg.Equal(decimal.RequireFromString("333.33")) {
		t.Errorf("AveragePerDay() = %s, want 333.33", avg)
	}

	if _, ok := AveragePerDay(g, d(0), time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)); ok {
		t.Error("expected deadline passed")
	}
}
