package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/sabrinahaniff/pdf-sentry/internal/indicator"
	"github.com/sabrinahaniff/pdf-sentry/internal/report"
	"github.com/sabrinahaniff/pdf-sentry/internal/risk"
	"github.com/sabrinahaniff/pdf-sentry/internal/ui"
	"github.com/sabrinahaniff/pdf-sentry/internal/validate"
)

func levelColor(l risk.Level) string {
	switch l {
	case risk.LevelHigh:
		return ui.ColorHigh
	case risk.LevelMedium:
		return ui.ColorMedium
	case risk.LevelLow:
		return ui.ColorLow
	default:
		return ui.ColorWhite
	}
}

// PrintReport renders one scan result to the console.
func PrintReport(r *report.Report) {
	fmt.Printf("\n%s%s%s\n", ui.ColorWhite, r.File.Name, ui.ColorReset)
	fmt.Printf("%s SHA-256: %s%s\n", ui.ColorGray, r.File.SHA256, ui.ColorReset)
	fmt.Printf("%s Size:    %d bytes%s\n", ui.ColorGray, r.File.Size, ui.ColorReset)

	c := levelColor(r.Risk.Level)
	fmt.Printf("\n %sRisk: %s (score %d)%s\n", c, r.Risk.Level, r.Risk.Score, ui.ColorReset)

	if len(r.Risk.Triggered) > 0 {
		fmt.Printf("\n%s Triggered indicators:%s\n", ui.ColorWhite, ui.ColorReset)
		for _, t := range r.Risk.Triggered {
			fmt.Printf("%s  - %-18s %6.1f  (count %d)%s\n",
				ui.ColorGray, t.Indicator, t.Contribution, r.Indicators[t.Indicator], ui.ColorReset)
		}
	} else {
		fmt.Printf("%s No risky keyword indicators found (not proof of safety).%s\n", ui.ColorGreen, ui.ColorReset)
	}

	if len(r.Confirmations) > 0 {
		fmt.Printf("\n%s Object-level confirmations:%s\n", ui.ColorWhite, ui.ColorReset)
		for _, cr := range r.Confirmations {
			if len(cr.Objects) == 0 {
				fmt.Printf("%s  - %s: no matching objects (keyword may be a false positive)%s\n",
					ui.ColorGray, cr.Indicator, ui.ColorReset)
				continue
			}
			fmt.Printf("%s  - %s: objects %s%s\n",
				ui.ColorGray, cr.Indicator, joinInts(cr.Objects), ui.ColorReset)
		}
	}

	fmt.Printf("\n%s Structural validation: %s%s\n", ui.ColorWhite, r.Validation.Verdict, ui.ColorReset)
	if r.Validation.Rewrite != validate.RewriteNotAttempted {
		fmt.Printf("%s Rewrite: %s%s\n", ui.ColorWhite, r.Validation.Rewrite, ui.ColorReset)
	}

	for _, h := range Highlights(r) {
		fmt.Printf("%s ! %s%s\n", ui.ColorYellow, h, ui.ColorReset)
	}
}

// Highlights derives the human-readable callouts the console and HTML report
// show above the raw numbers. Purely presentational; never feeds the score.
func Highlights(r *report.Report) []string {
	var hs []string
	ind := r.Indicators
	if ind[indicator.OpenAction] > 0 || ind[indicator.AdditionalActions] > 0 {
		hs = append(hs, "Auto-trigger actions detected (OpenAction/AA). Treat as high risk.")
	}
	if ind[indicator.LaunchAction] > 0 {
		hs = append(hs, "Launch actions can attempt external program launching.")
	}
	if ind[indicator.EmbeddedFile] > 0 || ind[indicator.Filespec] > 0 {
		hs = append(hs, "Embedded file indicators present (possible attached payloads).")
	}
	if ind[indicator.JavaScript] > 0 || ind[indicator.JS] > 0 {
		hs = append(hs, "JavaScript indicators present.")
	}
	if ind[indicator.ObjStm] > 0 {
		hs = append(hs, "Object streams present (often benign, but reduces visibility).")
	}
	if r.Validation.Verdict == validate.VerdictErrors {
		hs = append(hs, "Structural validation reported errors; the file deviates from the PDF spec.")
	}
	return hs
}

// SaveJSON writes the canonical JSON report to path.
func SaveJSON(r *report.Report, path string) error {
	data, err := r.MarshalIndent()
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
