package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/streammd"
)

func TestReadInputsFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# From file\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# From server\n"))
	}))
	defer srv.Close()

	data, err := readInputs([]string{path, srv.URL})
	if err != nil {
		t.Fatalf("read inputs: %v", err)
	}
	want := "# From file\n# From server\n"
	if string(data) != want {
		t.Fatalf("concatenated input\nwant: %q\n got: %q", want, string(data))
	}
}

func TestReadInputsFileURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("file url input\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err := readInputs([]string{"file://" + path})
	if err != nil {
		t.Fatalf("read inputs: %v", err)
	}
	if string(data) != "file url input\n" {
		t.Fatalf("unexpected content: %q", string(data))
	}
}

func TestReadInputsMissingFile(t *testing.T) {
	if _, err := readInputs([]string{filepath.Join(t.TempDir(), "nope.md")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadSourceRejectsEmpty(t *testing.T) {
	if _, err := loadSource("   "); err == nil {
		t.Fatalf("expected error for blank argument")
	}
}

func TestFetchURLErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()
	if _, err := fetchURL(srv.URL); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestResolveWidthExplicit(t *testing.T) {
	if got := resolveWidth(120); got != 120 {
		t.Fatalf("resolveWidth(120) = %d", got)
	}
}

func TestNormalizePathIsAbsolute(t *testing.T) {
	got := normalizePath("relative/doc.md")
	if !filepath.IsAbs(got) {
		t.Fatalf("normalizePath did not absolutize: %q", got)
	}
}

func TestRenderProcessedPlain(t *testing.T) {
	styles := streammd.DefaultDirectiveStyles()
	got, err := renderProcessed(nil, true, styles, "badge :badge[beta]\n\n")
	if err != nil {
		t.Fatalf("render processed: %v", err)
	}
	if !strings.Contains(got, "beta") {
		t.Fatalf("badge content missing: %q", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Fatalf("trailing newline not trimmed: %q", got)
	}
}
