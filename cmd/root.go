package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sabrinahaniff/pdf-sentry/internal/app/scan"
	"github.com/sabrinahaniff/pdf-sentry/internal/config"
	"github.com/sabrinahaniff/pdf-sentry/internal/ui"
	appver "github.com/sabrinahaniff/pdf-sentry/internal/version"
	"github.com/spf13/cobra"
)

const defaultPolicyPath = ".pdfsentry.yaml"

var (
	jsonOutput  bool
	htmlOutput  bool
	outDir      string
	noQPDF      bool
	runClamAV   bool
	didierPath  string
	policyPath  string
	timeoutSecs int
	concurrency int
	force       bool
)

var rootCmd = &cobra.Command{
	Use:   "pdfsentry <file.pdf> [file.pdf...]",
	Short: "pdfsentry performs static, pre-execution risk triage of PDF files by aggregating keyword-scan, object-search, and structural-validation signals into a weighted risk assessment. Output is a prioritization heuristic, not a malware verdict.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := config.Load(policyPath)
		if err != nil {
			return err
		}

		opts := scan.Options{
			JSONOutput:  jsonOutput,
			HTMLOutput:  htmlOutput,
			OutDir:      outDir,
			RunQPDF:     !noQPDF,
			RunClamAV:   runClamAV,
			DidierPath:  didierPath,
			Timeout:     time.Duration(timeoutSecs) * time.Second,
			Concurrency: concurrency,
			Force:       force,
		}
		if err := scan.Run(args, policy, opts); err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("%s%v%s\n", ui.ColorRed, err, ui.ColorReset)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = appver.Value
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Write a JSON report next to each file")
	rootCmd.Flags().BoolVar(&htmlOutput, "html", false, "Write an HTML report next to each file")
	rootCmd.Flags().StringVar(&outDir, "out", "", "Directory for reports and rebuilt files (default: alongside the input)")
	rootCmd.Flags().BoolVar(&noQPDF, "no-qpdf", false, "Skip qpdf structural validation and rewrite")
	rootCmd.Flags().BoolVar(&runClamAV, "clamav", false, "Run ClamAV as a second opinion (recorded, never scored)")
	rootCmd.Flags().StringVar(&didierPath, "didier-path", "", "Path to a DidierStevensSuite checkout (default: ./DidierStevensSuite)")
	rootCmd.Flags().StringVar(&policyPath, "policy", defaultPolicyPath, "Path to the scoring policy file")
	rootCmd.Flags().IntVar(&timeoutSecs, "timeout", 30, "Per-tool timeout in seconds")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of files scanned in parallel")
	rootCmd.Flags().BoolVar(&force, "force", false, "Overwrite existing report files without asking")

	rootCmd.Long = ui.AsciiArt + `
pdfsentry is a static PDF risk triage tool. It aggregates the output of
pdfid.py (keyword indicators), pdf-parser.py (object-level confirmation),
and qpdf (structural validation) into one deterministic, reproducible
risk report.

Usage:
  pdfsentry invoice.pdf
  pdfsentry invoice.pdf --json --html
  pdfsentry samples/*.pdf --concurrency 8 --out reports/

The score is a triage prioritization heuristic. A LOW result is not proof
of safety, and a HIGH result is not a malware verdict. Always practice
safe handling of untrusted files.
`
}
