package indicator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Name identifies one risky PDF feature tracked by the keyword scan.
type Name string

const (
	OpenAction        Name = "OpenAction"
	AdditionalActions Name = "AdditionalActions"
	JavaScript        Name = "JavaScript"
	JS                Name = "JS"
	EmbeddedFile      Name = "EmbeddedFile"
	LaunchAction      Name = "LaunchAction"
	Filespec          Name = "Filespec"
	XFA               Name = "XFA"
	AcroForm          Name = "AcroForm"
	RichMedia         Name = "RichMedia"
	ObjStm            Name = "ObjStm"
)

// keywordFor maps each indicator to the pdfid keyword that reports it.
var keywordFor = map[Name]string{
	OpenAction:        "/OpenAction",
	AdditionalActions: "/AA",
	JavaScript:        "/JavaScript",
	JS:                "/JS",
	EmbeddedFile:      "/EmbeddedFile",
	LaunchAction:      "/Launch",
	Filespec:          "/Filespec",
	XFA:               "/XFA",
	AcroForm:          "/AcroForm",
	RichMedia:         "/RichMedia",
	ObjStm:            "/ObjStm",
}

var byKeyword = func() map[string]Name {
	m := make(map[string]Name, len(keywordFor))
	for n, k := range keywordFor {
		m[k] = n
	}
	return m
}()

// All returns every tracked indicator in a fixed order.
func All() []Name {
	return []Name{
		OpenAction,
		AdditionalActions,
		JavaScript,
		JS,
		EmbeddedFile,
		LaunchAction,
		Filespec,
		XFA,
		AcroForm,
		RichMedia,
		ObjStm,
	}
}

// Keyword returns the pdfid keyword for n, e.g. "/Launch" for LaunchAction.
func Keyword(n Name) string {
	return keywordFor[n]
}

// Set maps every tracked indicator to its keyword-scan count. A Set produced
// by Normalize always contains every indicator, defaulting to zero.
type Set map[Name]int

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// MalformedError reports a keyword-scan line whose count could not be parsed
// for a tracked indicator. Counts are never silently defaulted because a
// mis-parsed count would corrupt scoring downstream.
type MalformedError struct {
	Indicator Name
	Token     string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed indicator data: %s has non-numeric count %q", e.Indicator, e.Token)
}

// pdfid prints one "keyword count" pair per line, e.g. " /JavaScript 2".
// Lines not starting with a /keyword token (banner, header, xref stats) are
// skipped.
var countLineRe = regexp.MustCompile(`^\s*(/\w+)\s+(\S+)`)

// Normalize parses raw keyword-scan output into a complete Set. Keywords
// outside the tracked enumeration are ignored so newer scanner versions do not
// break parsing. A tracked keyword with a non-integer count yields a
// *MalformedError naming the indicator.
func Normalize(raw string) (Set, error) {
	set := make(Set, len(keywordFor))
	for _, n := range All() {
		set[n] = 0
	}

	for _, line := range strings.Split(raw, "\n") {
		m := countLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name, ok := byKeyword[m[1]]
		if !ok {
			continue
		}
		count, err := strconv.Atoi(m[2])
		if err != nil || count < 0 {
			return nil, &MalformedError{Indicator: name, Token: m[2]}
		}
		set[name] = count
	}
	return set, nil
}
