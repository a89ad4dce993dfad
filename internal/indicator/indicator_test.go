package indicator

import (
	"errors"
	"reflect"
	"testing"
)

const samplePDFIDOutput = `PDFiD 0.2.8 /tmp/input.pdf
 PDF Header: %PDF-1.7
 obj                   12
 endobj                12
 stream                 3
 endstream              3
 xref                   1
 trailer                1
 startxref              1
 /Page                  2
 /Encrypt               0
 /ObjStm                0
 /JS                    1
 /JavaScript            1
 /AA                    0
 /OpenAction            1
 /AcroForm              0
 /JBIG2Decode           0
 /RichMedia             0
 /Launch                0
 /EmbeddedFile          0
 /XFA                   0
 /Colors > 2^24         0
`

func TestNormalizeFullKeySet(t *testing.T) {
	set, err := Normalize(samplePDFIDOutput)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	if len(set) != len(All()) {
		t.Fatalf("key count mismatch: got=%d want=%d", len(set), len(All()))
	}
	for _, n := range All() {
		if _, ok := set[n]; !ok {
			t.Fatalf("missing indicator %s in normalized set", n)
		}
	}

	wantCounts := map[Name]int{
		JS:         1,
		JavaScript: 1,
		OpenAction: 1,
	}
	for n, want := range wantCounts {
		if set[n] != want {
			t.Errorf("count mismatch for %s: got=%d want=%d", n, set[n], want)
		}
	}
	if set[LaunchAction] != 0 || set[ObjStm] != 0 {
		t.Errorf("zero-count indicators not defaulted: Launch=%d ObjStm=%d", set[LaunchAction], set[ObjStm])
	}
}

func TestNormalizeIgnoresUnknownKeywords(t *testing.T) {
	set, err := Normalize(" /Page 3\n /JBIG2Decode 1\n /Colors > 2^24 0\n")
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	for _, n := range All() {
		if set[n] != 0 {
			t.Fatalf("unknown keywords leaked into %s: got=%d", n, set[n])
		}
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	set, err := Normalize("")
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	for _, n := range All() {
		if set[n] != 0 {
			t.Fatalf("expected zero count for %s, got %d", n, set[n])
		}
	}
}

func TestNormalizeRepeatable(t *testing.T) {
	first, err := Normalize(samplePDFIDOutput)
	if err != nil {
		t.Fatalf("first Normalize() error: %v", err)
	}
	second, err := Normalize(samplePDFIDOutput)
	if err != nil {
		t.Fatalf("second Normalize() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-normalizing identical input diverged:\nfirst=%v\nsecond=%v", first, second)
	}
}

func TestNormalizeMalformedCount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Name
	}{
		{
			name: "non-numeric count",
			raw:  " /JavaScript 1\n /ObjStm two\n",
			want: ObjStm,
		},
		{
			name: "negative count",
			raw:  " /Launch -4\n",
			want: LaunchAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Normalize(tt.raw)
			if err == nil {
				t.Fatalf("expected error, got set=%v", set)
			}
			var me *MalformedError
			if !errors.As(err, &me) {
				t.Fatalf("expected *MalformedError, got %T: %v", err, err)
			}
			if me.Indicator != tt.want {
				t.Fatalf("error names wrong indicator: got=%s want=%s", me.Indicator, tt.want)
			}
			if set != nil {
				t.Fatalf("no set should be produced on malformed input, got %v", set)
			}
		})
	}
}
