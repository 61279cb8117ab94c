package document

import (
	"strings"
)

// ObjectType classifies an indexed record.
type ObjectType string

const (
	// TypeCollection groups other records.
	TypeCollection ObjectType = "collection"
	// TypeObject is a single digital object.
	TypeObject ObjectType = "object"
	// TypeCompound is an object made of ordered parts.
	TypeCompound ObjectType = "compound"
)

// Part is one ordered component of a compound object.
type Part struct {
	order        int
	mimeType     string
	title        string
	caption      string
	objectRef    string
	thumbnailRef string
}

// NewPart creates a Part. order is 1-based; 0 means the record carried none.
func NewPart(order int, mimeType, title, caption, objectRef, thumbnailRef string) Part {
	return Part{
		order:        order,
		mimeType:     mimeType,
		title:        title,
		caption:      caption,
		objectRef:    objectRef,
		thumbnailRef: thumbnailRef,
	}
}

// Order returns the declared 1-based order, or 0.
func (p Part) Order() int { return p.order }

// MimeType returns the part's MIME type.
func (p Part) MimeType() string { return p.mimeType }

// Title returns the part label.
func (p Part) Title() string { return p.title }

// Caption returns the part description.
func (p Part) Caption() string { return p.caption }

// ObjectRef returns the repository PID holding the part's bytes, if any.
func (p Part) ObjectRef() string { return p.objectRef }

// ThumbnailRef returns the part's thumbnail reference, if any.
func (p Part) ThumbnailRef() string { return p.thumbnailRef }

// Fields carries raw attributes for hydrating a Document from storage.
type Fields struct {
	PID        string
	ObjectType ObjectType
	Title      Values
	MemberOf   Values
	ChildOf    Values
	MimeType   string
	Abstract   string
	Creator    Values
	Parts      []Part
}

// Document is a read-only indexed record.
type Document struct {
	pid        string
	objectType ObjectType
	title      Values
	memberOf   Values
	childOf    Values
	mimeType   string
	abstract   string
	creator    Values
	parts      []Part
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(f Fields) Document {
	return Document{
		pid:        f.PID,
		objectType: f.ObjectType,
		title:      f.Title,
		memberOf:   f.MemberOf,
		childOf:    f.ChildOf,
		mimeType:   f.MimeType,
		abstract:   f.Abstract,
		creator:    f.Creator,
		parts:      f.Parts,
	}
}

// PID returns the persistent identifier.
func (d *Document) PID() string { return d.pid }

// ObjectType returns the record classification.
func (d *Document) ObjectType() ObjectType { return d.objectType }

// Title returns the title values.
func (d *Document) Title() Values { return d.title }

// MemberOf returns the parent collection PIDs.
func (d *Document) MemberOf() Values { return d.memberOf }

// ChildOf returns the compound parent marker; non-empty for records that are parts of another object.
func (d *Document) ChildOf() Values { return d.childOf }

// MimeType returns the MIME type of the primary content.
func (d *Document) MimeType() string { return d.mimeType }

// Abstract returns the description text.
func (d *Document) Abstract() string { return d.abstract }

// Creator returns the creator values.
func (d *Document) Creator() Values { return d.creator }

// Parts returns the ordered parts of a compound object.
func (d *Document) Parts() []Part { return d.parts }

// IsCollection reports whether the record is a collection.
func (d *Document) IsCollection() bool { return d.objectType == TypeCollection }

// IsCompound reports whether the record is a compound object.
func (d *Document) IsCompound() bool { return d.objectType == TypeCompound }

// Parent returns the first collection this record belongs to.
func (d *Document) Parent() (string, bool) {
	p := d.memberOf.First()
	return p, p != ""
}

// Part returns the part at 1-based position n.
func (d *Document) Part(n int) (Part, bool) {
	if n < 1 || n > len(d.parts) {
		return Part{}, false
	}
	return d.parts[n-1], true
}

// DisplayTitle returns the first title or fallback when there is none.
func (d *Document) DisplayTitle(fallback string) string {
	if t := d.title.First(); t != "" {
		return t
	}
	return fallback
}

// Segments splits a PID into its colon-delimited segments, dropping empty ones.
func Segments(pid string) []string {
	raw := strings.Split(pid, ":")
	out := raw[:0]
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Digits returns the first run of decimal digits in pid, used to name local files.
// A PID without digits yields its download file name instead.
func Digits(pid string) string {
	start := -1
	for i := 0; i < len(pid); i++ {
		isDigit := pid[i] >= '0' && pid[i] <= '9'
		switch {
		case isDigit && start < 0:
			start = i
		case !isDigit && start >= 0:
			return pid[start:i]
		}
	}
	if start >= 0 {
		return pid[start:]
	}
	return FileName(pid)
}

// FileName derives a download file name from a PID.
func FileName(pid string) string {
	return strings.ReplaceAll(pid, ":", "_")
}
