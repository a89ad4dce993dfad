package confirm

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sabrinahaniff/pdf-sentry/internal/indicator"
)

// QuerySpec names one object-level search to run against the PDF: the
// indicator being confirmed and the pdf-parser search pattern for it.
type QuerySpec struct {
	Indicator indicator.Name
	Pattern   string
}

// Result is the interpreted outcome of one object-level search. Zero matched
// objects is a valid outcome: the keyword count may have been a plain string
// match with no live object behind it.
type Result struct {
	Indicator indicator.Name `json:"indicator"`
	Pattern   string         `json:"pattern"`
	Objects   []int          `json:"objects"`
	Snippet   string         `json:"snippet"`
}

// Select emits exactly one query per indicator with a non-zero keyword count.
// Zero-count indicators are skipped entirely: they are "not checked", which is
// distinct from "checked and found nothing". Order follows the fixed
// indicator enumeration so repeated runs issue identical queries.
func Select(set indicator.Set) []QuerySpec {
	var specs []QuerySpec
	for _, n := range indicator.All() {
		if set[n] > 0 {
			specs = append(specs, QuerySpec{Indicator: n, Pattern: indicator.Keyword(n)})
		}
	}
	return specs
}

// pdf-parser prints an "obj N G" header for each matching object.
var objHeaderRe = regexp.MustCompile(`(?m)^obj (\d+) \d+`)

// Interpret extracts object numbers and a bounded snippet from raw
// object-search output. At most maxMatches objects are kept, deduplicated and
// ascending; the snippet holds the matched header lines, capped the same way
// to bound report size. Empty output yields a Result with no objects.
func Interpret(spec QuerySpec, raw string, maxMatches int) Result {
	res := Result{Indicator: spec.Indicator, Pattern: spec.Pattern}
	if maxMatches < 1 {
		maxMatches = 1
	}

	seen := make(map[int]bool)
	var snippet []string
	for _, m := range objHeaderRe.FindAllStringSubmatch(raw, -1) {
		if len(seen) >= maxMatches {
			break
		}
		id, err := strconv.Atoi(m[1])
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		res.Objects = append(res.Objects, id)
		snippet = append(snippet, strings.TrimSpace(m[0]))
	}

	sort.Ints(res.Objects)
	res.Snippet = strings.Join(snippet, "\n")
	return res
}
