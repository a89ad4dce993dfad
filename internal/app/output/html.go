package output

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/sabrinahaniff/pdf-sentry/internal/report"
	"github.com/sabrinahaniff/pdf-sentry/internal/risk"
	"github.com/sabrinahaniff/pdf-sentry/internal/version"
)

type htmlData struct {
	Report     *report.Report
	Highlights []string
	LevelClass string
	Generated  string
	Version    string
}

func levelClass(l risk.Level) string {
	switch l {
	case risk.LevelHigh:
		return "high"
	case risk.LevelMedium:
		return "medium"
	default:
		return "low"
	}
}

// SaveHTML writes a standalone HTML report page to path.
func SaveHTML(r *report.Report, path string) error {
	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer f.Close()

	data := htmlData{
		Report:     r,
		Highlights: Highlights(r),
		LevelClass: levelClass(r.Risk.Level),
		Generated:  time.Now().Format("2006-01-02 15:04:05"),
		Version:    version.Value,
	}
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render report %s: %w", path, err)
	}
	return nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>PDF Sentry Report - {{.Report.File.Name}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; background: #0e1117; color: #e2e8f0; margin: 0; padding: 2rem; }
  .card { background: #1a1d29; border: 1px solid #2d3748; border-radius: 8px; padding: 1.5rem; margin-bottom: 1.5rem; }
  h1 { margin: 0 0 0.25rem 0; font-size: 1.5rem; }
  h2 { font-size: 1.1rem; border-bottom: 1px solid #2d3748; padding-bottom: 0.5rem; }
  .muted { color: #94a3b8; font-size: 0.9rem; }
  .badge { display: inline-block; padding: 0.25rem 0.75rem; border-radius: 4px; font-weight: 600; }
  .badge.high { background: #dc2626; }
  .badge.medium { background: #ca8a04; }
  .badge.low { background: #059669; }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: 0.4rem 0.75rem; border-bottom: 1px solid #2d3748; }
  th { color: #94a3b8; font-weight: 500; }
  pre { background: #0e1117; border: 1px solid #2d3748; border-radius: 6px; padding: 0.75rem; overflow-x: auto; font-size: 0.8rem; }
  .highlight { color: #facc15; }
</style>
</head>
<body>
<div class="card">
  <h1>PDF Sentry Report</h1>
  <div class="muted">{{.Report.File.Name}} &middot; {{.Report.File.Size}} bytes &middot; SHA-256 {{.Report.File.SHA256}}</div>
  <div class="muted">Generated {{.Generated}} by pdf-sentry {{.Version}}</div>
  <p>
    <span class="badge {{.LevelClass}}">{{.Report.Risk.Level}}</span>
    <span class="muted">score {{.Report.Risk.Score}}</span>
  </p>
  {{range .Highlights}}<div class="highlight">&#9888; {{.}}</div>{{end}}
</div>

<div class="card">
  <h2>Triggered Indicators</h2>
  {{if .Report.Risk.Triggered}}
  <table>
    <tr><th>Indicator</th><th>Count</th><th>Contribution</th></tr>
    {{$r := .Report}}
    {{range .Report.Risk.Triggered}}
    <tr><td>{{.Indicator}}</td><td>{{index $r.Indicators .Indicator}}</td><td>{{printf "%.1f" .Contribution}}</td></tr>
    {{end}}
  </table>
  {{else}}<p class="muted">No risky keyword indicators found (not proof of safety).</p>{{end}}
</div>

<div class="card">
  <h2>Object-Level Confirmations</h2>
  {{if .Report.Confirmations}}
  <table>
    <tr><th>Indicator</th><th>Pattern</th><th>Objects</th></tr>
    {{range .Report.Confirmations}}
    <tr><td>{{.Indicator}}</td><td>{{.Pattern}}</td><td>{{if .Objects}}{{range .Objects}}{{.}} {{end}}{{else}}none (possible false positive){{end}}</td></tr>
    {{end}}
  </table>
  {{else}}<p class="muted">No object-level searches were run.</p>{{end}}
</div>

<div class="card">
  <h2>Structural Validation</h2>
  <p>Verdict: {{.Report.Validation.Verdict}} &middot; Rewrite: {{.Report.Validation.Rewrite}}</p>
</div>

<div class="card">
  <h2>Raw Tool Output</h2>
  <h3 class="muted">pdfid</h3>
  <pre>{{.Report.Raw.PDFID}}</pre>
  {{if .Report.Raw.PDFParser}}<h3 class="muted">pdf-parser</h3><pre>{{.Report.Raw.PDFParser}}</pre>{{end}}
  {{if .Report.Raw.QPDF}}<h3 class="muted">qpdf</h3><pre>{{.Report.Raw.QPDF}}</pre>{{end}}
  {{if .Report.Raw.ClamAV}}<h3 class="muted">clamav</h3><pre>{{.Report.Raw.ClamAV}}</pre>{{end}}
</div>
</body>
</html>
`
