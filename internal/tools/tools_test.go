package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSHA256File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.pdf")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	got, err := SHA256File(path)
	if err != nil {
		t.Fatalf("SHA256File() error: %v", err)
	}
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Fatalf("digest mismatch: got=%s want=%s", got, want)
	}
}

func TestSHA256FileMissing(t *testing.T) {
	if _, err := SHA256File(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestRunMissingBinaryIsRecorded(t *testing.T) {
	res := Run(context.Background(), time.Second, "pdf-sentry-no-such-binary")
	if res.Ok {
		t.Fatalf("missing binary must not be Ok: %+v", res)
	}
	if res.Status != StatusNotFound {
		t.Fatalf("status mismatch: got=%d want=%d", res.Status, StatusNotFound)
	}
	if res.Note == "" {
		t.Fatalf("expected a note explaining the failure")
	}
}

func TestRunTimeoutIsRecorded(t *testing.T) {
	res := Run(context.Background(), 50*time.Millisecond, "sleep", "5")
	if res.Ok {
		t.Fatalf("timed-out run must not be Ok: %+v", res)
	}
	if res.Status != StatusTimeout {
		t.Fatalf("status mismatch: got=%d want=%d", res.Status, StatusTimeout)
	}
}

func TestSuiteMissingScripts(t *testing.T) {
	suite := NewSuite(t.TempDir(), time.Second)
	if suite.HasPDFID() || suite.HasParser() {
		t.Fatalf("empty suite dir must report scripts missing")
	}

	res := suite.PDFID(context.Background(), "whatever.pdf")
	if res.Ok || res.Status != StatusNotFound {
		t.Fatalf("missing pdfid.py must be recorded as not found: %+v", res)
	}
	res = suite.ObjectSearch(context.Background(), "/JS", "whatever.pdf")
	if res.Ok || res.Status != StatusNotFound {
		t.Fatalf("missing pdf-parser.py must be recorded as not found: %+v", res)
	}
}
