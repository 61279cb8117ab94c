// Package filecache reads locally cached datastream files.
package filecache

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/datastream"
)

// File is an open local file with its detected content type.
type File struct {
	io.ReadCloser
	Path        string
	ContentType string
	Size        int64
}

// Store opens files below a base directory. Relative paths resolve against it.
type Store struct {
	base string
}

// New creates a Store. An empty base uses the working directory.
func New(base string) *Store {
	return &Store{base: base}
}

func (s *Store) resolve(path string) string {
	if filepath.IsAbs(path) || s.base == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(s.base, path)
}

// Exists reports whether path is a regular file.
func (s *Store) Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(s.resolve(path))
	return err == nil && info.Mode().IsRegular()
}

// Open opens path for reading. Missing files yield domain.ErrNotFound.
// The caller owns the returned file and must close it.
func (s *Store) Open(path string) (*File, error) {
	full := s.resolve(path)
	f, err := os.Open(full) //nolint:gosec // paths are built from configuration, not request input
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: not a regular file: %w", path, domain.ErrNotFound)
	}
	return &File{
		ReadCloser:  f,
		Path:        full,
		ContentType: ContentType(full),
		Size:        info.Size(),
	}, nil
}

// Stream opens path as a local datastream.
func (s *Store) Stream(path string) (*datastream.Stream, error) {
	f, err := s.Open(path)
	if err != nil {
		return nil, err
	}
	return &datastream.Stream{
		Body:          f,
		ContentType:   f.ContentType,
		ContentLength: f.Size,
		Source:        datastream.SourceLocal,
	}, nil
}

// ContentType guesses a MIME type from the file extension.
func ContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jp2":
		return "image/jp2"
	case ".mp3":
		return "audio/mpeg"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
