package validate

import "strings"

// Verdict classifies the structural validator's outcome for a file.
type Verdict string

// RewriteOutcome records whether an attempted rewrite/rebuild succeeded. A
// failed rewrite is surfaced in the report, never escalated to a scan failure.
type RewriteOutcome string

const (
	VerdictClean       Verdict = "CLEAN"
	VerdictWarnings    Verdict = "WARNINGS"
	VerdictErrors      Verdict = "ERRORS"
	VerdictUnavailable Verdict = "UNAVAILABLE"

	RewriteSucceeded    RewriteOutcome = "SUCCEEDED"
	RewriteFailed       RewriteOutcome = "FAILED"
	RewriteNotAttempted RewriteOutcome = "NOT_ATTEMPTED"
)

// Run is a tagged record of one validator process invocation. Attempted=false
// means the tool was never run (not installed or disabled); consumers must
// handle that case explicitly instead of reading a sentinel status.
type Run struct {
	Attempted bool
	Status    int
	Stderr    string
}

// Result pairs the structural verdict with the rewrite outcome.
type Result struct {
	Verdict Verdict        `json:"verdict"`
	Rewrite RewriteOutcome `json:"rewrite"`
}

// Interpret maps the qpdf check and rewrite invocations onto a Result.
// Exit 0 with no diagnostics is Clean, exit 0 with diagnostics is Warnings,
// and a non-zero exit is Errors. When the validator never ran the verdict is
// Unavailable and the rewrite is forced to NotAttempted.
func Interpret(check Run, rewrite Run) Result {
	if !check.Attempted {
		return Result{Verdict: VerdictUnavailable, Rewrite: RewriteNotAttempted}
	}

	res := Result{Rewrite: RewriteNotAttempted}
	switch {
	case check.Status != 0:
		res.Verdict = VerdictErrors
	case strings.TrimSpace(check.Stderr) != "":
		res.Verdict = VerdictWarnings
	default:
		res.Verdict = VerdictClean
	}

	if rewrite.Attempted {
		if rewrite.Status == 0 {
			res.Rewrite = RewriteSucceeded
		} else {
			res.Rewrite = RewriteFailed
		}
	}
	return res
}
