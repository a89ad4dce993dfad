package tools

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Suite locates and runs the Didier Stevens analysis scripts. An empty
// DidierPath falls back to a DidierStevensSuite checkout next to the working
// directory, matching the conventional layout.
type Suite struct {
	DidierPath string
	Python     string
	Timeout    time.Duration
}

func NewSuite(didierPath string, timeout time.Duration) Suite {
	if didierPath == "" {
		didierPath = filepath.Join(".", "DidierStevensSuite")
	}
	return Suite{DidierPath: didierPath, Python: "python3", Timeout: timeout}
}

func (s Suite) script(name string) (string, bool) {
	p := filepath.Join(s.DidierPath, name)
	_, err := os.Stat(p)
	return p, err == nil
}

// HasPDFID reports whether the keyword scanner script is present.
func (s Suite) HasPDFID() bool {
	_, ok := s.script("pdfid.py")
	return ok
}

// HasParser reports whether the object-search script is present.
func (s Suite) HasParser() bool {
	_, ok := s.script("pdf-parser.py")
	return ok
}

// PDFID runs the keyword indicator scan over the file.
func (s Suite) PDFID(ctx context.Context, pdfPath string) RunResult {
	script, ok := s.script("pdfid.py")
	if !ok {
		return RunResult{
			Name:   "pdfid.py",
			Status: StatusNotFound,
			Note:   "pdfid.py not found (DidierStevensSuite missing)",
		}
	}
	res := Run(ctx, s.Timeout, s.Python, script, pdfPath)
	res.Name = "pdfid.py"
	return res
}

// ObjectSearch runs pdf-parser's object-level search for one pattern.
func (s Suite) ObjectSearch(ctx context.Context, pattern, pdfPath string) RunResult {
	script, ok := s.script("pdf-parser.py")
	if !ok {
		return RunResult{
			Name:   "pdf-parser.py",
			Status: StatusNotFound,
			Note:   "pdf-parser.py not found (DidierStevensSuite missing)",
		}
	}
	res := Run(ctx, s.Timeout, s.Python, script, "-s", pattern, pdfPath)
	res.Name = "pdf-parser.py -s " + pattern
	return res
}

// QPDFCheck runs the structural validator.
func QPDFCheck(ctx context.Context, timeout time.Duration, pdfPath string) RunResult {
	res := Run(ctx, timeout, "qpdf", "--check", pdfPath)
	res.Name = "qpdf --check"
	return res
}

// QPDFRewrite attempts a full rewrite/rebuild of the file. Rewriting can
// strip some malformed structures but is not a safety guarantee.
func QPDFRewrite(ctx context.Context, timeout time.Duration, src, dst string) RunResult {
	res := Run(ctx, timeout, "qpdf", src, dst)
	res.Name = "qpdf rewrite"
	return res
}

// ClamScan runs an optional signature scan as a second opinion. Its output is
// recorded verbatim and never feeds the risk score.
func ClamScan(ctx context.Context, timeout time.Duration, pdfPath string) RunResult {
	res := Run(ctx, timeout, "clamscan", "--no-summary", pdfPath)
	res.Name = "clamscan"
	return res
}
