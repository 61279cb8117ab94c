// Package datastream describes logical datastream requests and the MIME tables used to route them.
package datastream

import (
	"io"
	"slices"
	"strconv"

	"github.com/kailas-cloud/discovery/internal/domain"
)

// Logical datastream names with special handling.
const (
	Thumbnail      = "tn"
	ThumbnailAlias = "thumbnail"
	Object         = "object"
)

// Source identifies where a stream's bytes came from.
type Source string

const (
	SourceLocal       Source = "local"
	SourceRepository  Source = "repository"
	SourcePlaceholder Source = "placeholder"
)

// Request selects one datastream of one object. Part is 1-based; 0 means the object itself.
type Request struct {
	Index      domain.Index
	PID        string
	Datastream string
	Part       int
}

// IsThumbnail reports whether the request targets the thumbnail datastream.
func (r Request) IsThumbnail() bool {
	return r.Datastream == Thumbnail || r.Datastream == ThumbnailAlias
}

// PartSuffix returns "-{n}" for part requests, "" otherwise.
func (r Request) PartSuffix() string {
	if r.Part < 1 {
		return ""
	}
	return "-" + strconv.Itoa(r.Part)
}

// Stream is an open byte source. The caller must Close it.
type Stream struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	Source        Source
}

// Close releases the underlying body.
func (s *Stream) Close() error {
	if s == nil || s.Body == nil {
		return nil
	}
	return s.Body.Close()
}

// Table maps MIME types to object-type buckets, datastream types and local file extensions.
// Lookups walk keys in sorted order so overlapping entries resolve the same way every time.
type Table struct {
	ObjectTypes    map[string][]string
	Types          map[string][]string
	FileExtensions map[string][]string
}

// Bucket returns the object-type bucket holding mime ("audio", "smallImage", ...), or "".
func (t Table) Bucket(mime string) string {
	return firstKeyContaining(t.ObjectTypes, mime)
}

// DSType returns the datastream type used in URLs for mime. Thumbnail requests map to "tn";
// unknown types map to "object".
func (t Table) DSType(mime string) string {
	if mime == Thumbnail || mime == ThumbnailAlias {
		return Thumbnail
	}
	if k := firstKeyContaining(t.Types, mime); k != "" {
		return k
	}
	return Object
}

// Extensions lists every local file extension whose MIME list includes mime.
func (t Table) Extensions(mime string) []string {
	var out []string
	for _, ext := range sortedKeys(t.FileExtensions) {
		if slices.Contains(t.FileExtensions[ext], mime) {
			out = append(out, ext)
		}
	}
	return out
}

func firstKeyContaining(m map[string][]string, mime string) string {
	if mime == "" {
		return ""
	}
	for _, k := range sortedKeys(m) {
		if slices.Contains(m[k], mime) {
			return k
		}
	}
	return ""
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
