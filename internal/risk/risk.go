package risk

import (
	"math"
	"sort"

	"github.com/sabrinahaniff/pdf-sentry/internal/config"
	"github.com/sabrinahaniff/pdf-sentry/internal/confirm"
	"github.com/sabrinahaniff/pdf-sentry/internal/indicator"
	"github.com/sabrinahaniff/pdf-sentry/internal/validate"
)

// Level is the risk band derived from the numeric score.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

// Contribution is one indicator's weighted share of the total score.
type Contribution struct {
	Indicator    indicator.Name `json:"indicator"`
	Contribution float64        `json:"contribution"`
}

// Assessment is the scoring engine's output: the rounded score, its band, and
// the triggered indicators ordered by contribution (ties broken by name).
type Assessment struct {
	Score     int            `json:"score"`
	Level     Level          `json:"level"`
	Triggered []Contribution `json:"triggered"`
}

// Score combines normalized indicator counts, object-search confirmations,
// and the structural verdict into an Assessment under the given policy.
//
// Per indicator the contribution is weight x min(count, cap). When an
// object-level search ran and found nothing the contribution is scaled by the
// unconfirmed factor: the keyword hit has no live object behind it. An
// indicator that was never searched keeps its full contribution, since
// "not searched" is weaker evidence of absence than "searched, not found".
func Score(set indicator.Set, confirmations []confirm.Result, validation validate.Result, policy config.Policy) Assessment {
	searched := make(map[indicator.Name]confirm.Result, len(confirmations))
	for _, c := range confirmations {
		searched[c.Indicator] = c
	}

	var total float64
	var triggered []Contribution
	for _, n := range indicator.All() {
		count := set[n]
		if count == 0 {
			continue
		}
		if count > policy.CountCap {
			count = policy.CountCap
		}
		contribution := policy.Weights[n] * float64(count)
		if c, ok := searched[n]; ok && len(c.Objects) == 0 {
			contribution *= policy.UnconfirmedFactor
		}
		if contribution == 0 {
			continue
		}
		total += contribution
		triggered = append(triggered, Contribution{Indicator: n, Contribution: contribution})
	}

	switch validation.Verdict {
	case validate.VerdictErrors:
		total += policy.ErrorsPenalty
	case validate.VerdictWarnings:
		total += policy.WarningsPenalty
	}

	sort.Slice(triggered, func(i, j int) bool {
		if triggered[i].Contribution == triggered[j].Contribution {
			return triggered[i].Indicator < triggered[j].Indicator
		}
		return triggered[i].Contribution > triggered[j].Contribution
	})

	score := int(math.Round(total))
	return Assessment{Score: score, Level: levelFor(score, policy), Triggered: triggered}
}

// levelFor maps a score onto its band using closed-open intervals, so a score
// sitting exactly on a threshold lands in the higher band.
func levelFor(score int, policy config.Policy) Level {
	switch {
	case float64(score) >= policy.HighThreshold:
		return LevelHigh
	case float64(score) >= policy.MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}
