package filecache

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/datastream"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "object/123.pdf", "%PDF")
	s := New(dir)

	if !s.Exists("object/123.pdf") {
		t.Error("expected relative file to exist")
	}
	if !s.Exists(filepath.Join(dir, "object/123.pdf")) {
		t.Error("expected absolute file to exist")
	}
	if s.Exists("object/124.pdf") || s.Exists("object") || s.Exists("") {
		t.Error("missing files and directories must not exist")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tn/123-2.png", "png-bytes")
	s := New(dir)

	f, err := s.Open("tn/123-2.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	if f.ContentType != "image/png" || f.Size != 9 {
		t.Errorf("ContentType=%q Size=%d", f.ContentType, f.Size)
	}
	data, _ := io.ReadAll(f)
	if string(data) != "png-bytes" {
		t.Errorf("content = %q", data)
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := New(t.TempDir()).Open("nope.png")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a/1.jp2":  "image/jp2",
		"a/1.MP3":  "audio/mpeg",
		"a/1.pdf":  "application/pdf",
		"a/1.zzzq": "application/octet-stream",
	}
	for in, want := range tests {
		if got := ContentType(in); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStream(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "object/9.pdf", "%PDF-1.4")

	s, err := New(dir).Stream("object/9.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if s.Source != datastream.SourceLocal || s.ContentType != "application/pdf" || s.ContentLength != 8 {
		t.Errorf("stream = %+v", s)
	}
}
