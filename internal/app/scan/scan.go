package scan

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sabrinahaniff/pdf-sentry/internal/app/output"
	"github.com/sabrinahaniff/pdf-sentry/internal/config"
	"github.com/sabrinahaniff/pdf-sentry/internal/confirm"
	"github.com/sabrinahaniff/pdf-sentry/internal/indicator"
	"github.com/sabrinahaniff/pdf-sentry/internal/report"
	"github.com/sabrinahaniff/pdf-sentry/internal/risk"
	"github.com/sabrinahaniff/pdf-sentry/internal/tools"
	"github.com/sabrinahaniff/pdf-sentry/internal/ui"
	"github.com/sabrinahaniff/pdf-sentry/internal/validate"
)

type Options struct {
	JSONOutput  bool
	HTMLOutput  bool
	OutDir      string
	RunQPDF     bool
	RunClamAV   bool
	DidierPath  string
	Timeout     time.Duration
	Concurrency int
	Force       bool
}

// Run scans each file independently and renders the results. Files share
// nothing but the read-only policy table, so they are scanned concurrently
// with a bounded worker pool.
func Run(paths []string, policy config.Policy, opts Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	suite := tools.NewSuite(opts.DidierPath, opts.Timeout)
	if !suite.HasPDFID() {
		return fmt.Errorf("pdfid.py not found under %s: clone DidierStevensSuite next to this repo or pass --didier-path", suite.DidierPath)
	}

	workerCount := opts.Concurrency
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(paths) {
		workerCount = len(paths)
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		scanErrs  []string
		fileQueue = make(chan string)
	)

	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case path, ok := <-fileQueue:
				if !ok {
					return
				}
				r, err := ScanFile(ctx, path, suite, policy, opts)

				mu.Lock()
				if err != nil {
					scanErrs = append(scanErrs, fmt.Sprintf("%s: %v", path, err))
				} else {
					output.PrintReport(r)
					if err := writeReports(r, path, opts); err != nil {
						scanErrs = append(scanErrs, fmt.Sprintf("%s: %v", path, err))
					}
				}
				mu.Unlock()
			}
		}
	}

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go worker()
	}
	for _, p := range paths {
		select {
		case <-ctx.Done():
			close(fileQueue)
			wg.Wait()
			return ctx.Err()
		case fileQueue <- p:
		}
	}
	close(fileQueue)
	wg.Wait()

	if len(scanErrs) > 0 {
		fmt.Printf("\n%sErrors encountered during scan:%s\n", ui.ColorRed, ui.ColorReset)
		for _, e := range scanErrs {
			fmt.Printf(" - %s\n", e)
		}
		return fmt.Errorf("%d of %d files failed to scan", len(scanErrs), len(paths))
	}
	return nil
}

// ScanFile runs the full pipeline for one file: hash, keyword scan,
// normalization, object-level confirmations, structural validation, scoring,
// and aggregation. It returns no partial report: any fatal stage error means
// no assessment is available for the file.
func ScanFile(ctx context.Context, path string, suite tools.Suite, policy config.Policy, opts Options) (*report.Report, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	digest, err := tools.SHA256File(path)
	if err != nil {
		return nil, err
	}
	identity := report.FileIdentity{Name: filepath.Base(path), Size: st.Size(), SHA256: digest}

	// Keyword indicator scan. Without it there is nothing to assess.
	pdfidRes := suite.PDFID(ctx, path)
	if !pdfidRes.Ok {
		return nil, fmt.Errorf("keyword scan failed (status %d): %s", pdfidRes.Status, firstNonEmpty(pdfidRes.Note, pdfidRes.Stderr))
	}
	set, err := indicator.Normalize(pdfidRes.Stdout)
	if err != nil {
		return nil, err
	}
	raw := report.RawOutputs{PDFID: pdfidRes.Stdout}

	// Object-level confirmation searches for every indicator the keyword
	// scan flagged. If pdf-parser is missing the indicators stay unsearched,
	// which the scoring engine treats differently from "searched, not found".
	var confirmations []confirm.Result
	specs := confirm.Select(set)
	if len(specs) > 0 && suite.HasParser() {
		var blob strings.Builder
		for _, spec := range specs {
			res := suite.ObjectSearch(ctx, spec.Pattern, path)
			fmt.Fprintf(&blob, "$ %s\n%s", res.Name, res.Stdout)
			if !res.Ok {
				fmt.Fprintf(&blob, "[search failed: status %d]\n", res.Status)
				continue
			}
			confirmations = append(confirmations, confirm.Interpret(spec, res.Stdout, policy.MaxConfirmationMatches))
		}
		raw.PDFParser = blob.String()
	}

	// Structural validation and rewrite attempt, both optional.
	var checkRun, rewriteRun validate.Run
	if opts.RunQPDF && tools.Available("qpdf") {
		check := tools.QPDFCheck(ctx, opts.Timeout, path)
		checkRun = validate.Run{Attempted: true, Status: check.Status, Stderr: check.Stderr}

		rebuilt := rebuiltPath(path, opts.OutDir)
		rewrite := tools.QPDFRewrite(ctx, opts.Timeout, path, rebuilt)
		rewriteRun = validate.Run{Attempted: true, Status: rewrite.Status, Stderr: rewrite.Stderr}

		raw.QPDF = fmt.Sprintf("$ %s\n%s%s\n$ %s\n%s%s",
			check.Name, check.Stdout, check.Stderr,
			rewrite.Name, rewrite.Stdout, rewrite.Stderr)
	}
	validation := validate.Interpret(checkRun, rewriteRun)

	if opts.RunClamAV && tools.Available("clamscan") {
		clam := tools.ClamScan(ctx, opts.Timeout, path)
		raw.ClamAV = fmt.Sprintf("$ %s\n%s%s", clam.Name, clam.Stdout, clam.Stderr)
	}

	assessment := risk.Score(set, confirmations, validation, policy)
	return report.Aggregate(identity, set, confirmations, validation, assessment, raw)
}

func writeReports(r *report.Report, path string, opts Options) error {
	if opts.JSONOutput {
		p := reportPath(path, opts.OutDir, ".pdf_sentry_report.json")
		if err := confirmOverwrite(p, opts.Force); err != nil {
			return err
		}
		if err := output.SaveJSON(r, p); err != nil {
			return err
		}
		fmt.Printf("%s JSON report written to %s%s\n", ui.ColorGray, p, ui.ColorReset)
	}
	if opts.HTMLOutput {
		p := reportPath(path, opts.OutDir, ".pdf_sentry_report.html")
		if err := confirmOverwrite(p, opts.Force); err != nil {
			return err
		}
		if err := output.SaveHTML(r, p); err != nil {
			return err
		}
		fmt.Printf("%s HTML report written to %s%s\n", ui.ColorGray, p, ui.ColorReset)
	}
	return nil
}

func confirmOverwrite(path string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	ok, err := ui.Confirm(fmt.Sprintf("%s exists, overwrite?", path))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("refused to overwrite %s", path)
	}
	return nil
}

func reportPath(pdfPath, outDir, suffix string) string {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(pdfPath)
	}
	return filepath.Join(dir, filepath.Base(pdfPath)+suffix)
}

func rebuiltPath(pdfPath, outDir string) string {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(pdfPath)
	}
	return filepath.Join(dir, filepath.Base(pdfPath)+".rebuilt.pdf")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
