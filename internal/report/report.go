package report

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sabrinahaniff/pdf-sentry/internal/confirm"
	"github.com/sabrinahaniff/pdf-sentry/internal/indicator"
	"github.com/sabrinahaniff/pdf-sentry/internal/risk"
	"github.com/sabrinahaniff/pdf-sentry/internal/validate"
)

// ErrInconsistentStageState flags a wiring bug: a pipeline stage claims it ran
// but its raw output blob is missing from the aggregate.
var ErrInconsistentStageState = errors.New("inconsistent stage state")

// FileIdentity names the scanned file. The hash is computed by the invocation
// layer and passed through untouched.
type FileIdentity struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// RawOutputs carries the collaborating tools' raw text, passed through
// unmodified so a reviewer can audit the assessment against the evidence.
type RawOutputs struct {
	PDFID     string `json:"pdfid"`
	PDFParser string `json:"pdf_parser"`
	QPDF      string `json:"qpdf"`
	ClamAV    string `json:"clamav,omitempty"`
}

// Report is the immutable per-scan aggregate. It is assembled once by
// Aggregate and never recomputed or mutated afterwards.
type Report struct {
	File          FileIdentity     `json:"file"`
	Indicators    indicator.Set    `json:"indicators"`
	Confirmations []confirm.Result `json:"confirmations"`
	Validation    validate.Result  `json:"validation"`
	Risk          risk.Assessment  `json:"risk"`
	Raw           RawOutputs       `json:"raw"`
}

// Aggregate assembles a Report from the stage outputs. It performs no
// recomputation; it only verifies that every stage which claims to have run
// left its raw blob behind, so a partially wired pipeline cannot emit a
// report that looks complete.
func Aggregate(file FileIdentity, set indicator.Set, confirmations []confirm.Result, validation validate.Result, assessment risk.Assessment, raw RawOutputs) (*Report, error) {
	if set != nil && raw.PDFID == "" {
		return nil, fmt.Errorf("%w: indicators normalized but pdfid output missing", ErrInconsistentStageState)
	}
	if len(confirmations) > 0 && raw.PDFParser == "" {
		return nil, fmt.Errorf("%w: confirmations present but pdf-parser output missing", ErrInconsistentStageState)
	}
	if validation.Verdict != validate.VerdictUnavailable && raw.QPDF == "" {
		return nil, fmt.Errorf("%w: validation ran but qpdf output missing", ErrInconsistentStageState)
	}

	confs := make([]confirm.Result, len(confirmations))
	copy(confs, confirmations)

	return &Report{
		File:          file,
		Indicators:    set.Clone(),
		Confirmations: confs,
		Validation:    validation,
		Risk:          assessment,
		Raw:           raw,
	}, nil
}

// MarshalIndent renders the canonical JSON form consumed by the dashboard.
func (r *Report) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
