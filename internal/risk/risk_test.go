package risk

import (
	"reflect"
	"testing"

	"github.com/sabrinahaniff/pdf-sentry/internal/config"
	"github.com/sabrinahaniff/pdf-sentry/internal/confirm"
	"github.com/sabrinahaniff/pdf-sentry/internal/indicator"
	"github.com/sabrinahaniff/pdf-sentry/internal/validate"
)

func zeroSet() indicator.Set {
	set := make(indicator.Set)
	for _, n := range indicator.All() {
		set[n] = 0
	}
	return set
}

func cleanValidation() validate.Result {
	return validate.Result{Verdict: validate.VerdictClean, Rewrite: validate.RewriteNotAttempted}
}

func unavailableValidation() validate.Result {
	return validate.Result{Verdict: validate.VerdictUnavailable, Rewrite: validate.RewriteNotAttempted}
}

func TestScoreAllZeroIsLow(t *testing.T) {
	got := Score(zeroSet(), nil, unavailableValidation(), config.Default())
	if got.Score != 0 {
		t.Fatalf("score mismatch: got=%d want=0", got.Score)
	}
	if got.Level != LevelLow {
		t.Fatalf("level mismatch: got=%s want=%s", got.Level, LevelLow)
	}
	if len(got.Triggered) != 0 {
		t.Fatalf("triggered list must be empty, got %v", got.Triggered)
	}
}

func TestScoreUnconfirmedIndicatorIsHalved(t *testing.T) {
	set := zeroSet()
	set[indicator.JavaScript] = 1

	// Searched, zero objects found: weak signal.
	confirmations := []confirm.Result{
		{Indicator: indicator.JavaScript, Pattern: "/JavaScript"},
	}
	got := Score(set, confirmations, unavailableValidation(), config.Default())

	// 25 x min(1,3) x 0.5 = 12.5, rounds to 13.
	if got.Score != 13 {
		t.Fatalf("score mismatch: got=%d want=13", got.Score)
	}
	if got.Level != LevelLow {
		t.Fatalf("level mismatch: got=%s want=%s", got.Level, LevelLow)
	}
}

func TestScoreNotSearchedKeepsFullContribution(t *testing.T) {
	set := zeroSet()
	set[indicator.JavaScript] = 1

	got := Score(set, nil, unavailableValidation(), config.Default())
	if got.Score != 25 {
		t.Fatalf("unsearched indicator must not be reduced: got=%d want=25", got.Score)
	}
}

func TestScoreConfirmedWithValidationErrors(t *testing.T) {
	set := zeroSet()
	set[indicator.LaunchAction] = 2
	set[indicator.EmbeddedFile] = 1

	confirmations := []confirm.Result{
		{Indicator: indicator.LaunchAction, Pattern: "/Launch", Objects: []int{4, 9}},
		{Indicator: indicator.EmbeddedFile, Pattern: "/EmbeddedFile", Objects: []int{11}},
	}
	validation := validate.Result{Verdict: validate.VerdictErrors, Rewrite: validate.RewriteFailed}

	got := Score(set, confirmations, validation, config.Default())

	// 30x2 + 20x1 + 15 penalty = 95.
	if got.Score != 95 {
		t.Fatalf("score mismatch: got=%d want=95", got.Score)
	}
	if got.Level != LevelHigh {
		t.Fatalf("level mismatch: got=%s want=%s", got.Level, LevelHigh)
	}
}

func TestScoreCountCap(t *testing.T) {
	set := zeroSet()
	set[indicator.JavaScript] = 7

	got := Score(set, nil, unavailableValidation(), config.Default())
	// Capped at 3: 25 x 3 = 75, not 175.
	if got.Score != 75 {
		t.Fatalf("count cap not applied: got=%d want=75", got.Score)
	}
}

func TestScoreWarningsPenalty(t *testing.T) {
	set := zeroSet()
	set[indicator.ObjStm] = 1

	validation := validate.Result{Verdict: validate.VerdictWarnings, Rewrite: validate.RewriteSucceeded}
	got := Score(set, nil, validation, config.Default())
	// 10 + 5 warning penalty = 15.
	if got.Score != 15 {
		t.Fatalf("warnings penalty not applied: got=%d want=15", got.Score)
	}
}

func TestScoreBandBoundaries(t *testing.T) {
	tests := []struct {
		weight float64
		want   Level
	}{
		{weight: 19, want: LevelLow},
		{weight: 20, want: LevelMedium},
		{weight: 49, want: LevelMedium},
		{weight: 50, want: LevelHigh},
	}

	for _, tt := range tests {
		policy := config.Default()
		policy.Weights[indicator.JavaScript] = tt.weight

		set := zeroSet()
		set[indicator.JavaScript] = 1

		got := Score(set, nil, unavailableValidation(), policy)
		if got.Score != int(tt.weight) {
			t.Fatalf("score mismatch at weight %v: got=%d", tt.weight, got.Score)
		}
		if got.Level != tt.want {
			t.Fatalf("band mismatch at score %v: got=%s want=%s", tt.weight, got.Level, tt.want)
		}
	}
}

func TestScoreTriggeredOrdering(t *testing.T) {
	set := zeroSet()
	set[indicator.LaunchAction] = 1      // 30
	set[indicator.AdditionalActions] = 1 // 10
	set[indicator.ObjStm] = 1            // 10, ties with AdditionalActions

	got := Score(set, nil, unavailableValidation(), config.Default())

	wantOrder := []indicator.Name{
		indicator.LaunchAction,
		indicator.AdditionalActions, // name ascending breaks the 10/10 tie
		indicator.ObjStm,
	}
	if len(got.Triggered) != len(wantOrder) {
		t.Fatalf("triggered count mismatch: got=%d want=%d", len(got.Triggered), len(wantOrder))
	}
	for i, n := range wantOrder {
		if got.Triggered[i].Indicator != n {
			t.Fatalf("ordering mismatch at %d: got=%s want=%s", i, got.Triggered[i].Indicator, n)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	set := zeroSet()
	set[indicator.JavaScript] = 2
	set[indicator.EmbeddedFile] = 1
	set[indicator.ObjStm] = 4

	confirmations := []confirm.Result{
		{Indicator: indicator.JavaScript, Pattern: "/JavaScript", Objects: []int{3}},
		{Indicator: indicator.EmbeddedFile, Pattern: "/EmbeddedFile"},
	}
	validation := validate.Result{Verdict: validate.VerdictWarnings, Rewrite: validate.RewriteSucceeded}

	first := Score(set, confirmations, validation, config.Default())
	second := Score(set, confirmations, validation, config.Default())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical input produced different assessments:\nfirst=%+v\nsecond=%+v", first, second)
	}
}

func TestScoreZeroWeightIndicatorNotTriggered(t *testing.T) {
	policy := config.Default()
	policy.Weights[indicator.ObjStm] = 0

	set := zeroSet()
	set[indicator.ObjStm] = 3

	got := Score(set, nil, unavailableValidation(), policy)
	if len(got.Triggered) != 0 {
		t.Fatalf("zero-weight indicator must not trigger, got %v", got.Triggered)
	}
	if got.Score != 0 {
		t.Fatalf("score mismatch: got=%d want=0", got.Score)
	}
}
