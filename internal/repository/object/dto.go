package object

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/discovery/internal/db"
	"github.com/kailas-cloud/discovery/internal/domain/document"
)

// recordDTO mirrors the indexed JSON record. Only the attributes the
// discovery layer reads are decoded.
type recordDTO struct {
	PID           string           `json:"pid"`
	ObjectType    string           `json:"object_type"`
	Title         document.Values  `json:"title"`
	MemberOf      document.Values  `json:"is_member_of_collection"`
	ChildOf       document.Values  `json:"is_child_of"`
	MimeType      string           `json:"mime_type"`
	Abstract      string           `json:"abstract"`
	Creator       document.Values  `json:"creator"`
	DisplayRecord displayRecordDTO `json:"display_record"`
}

type displayRecordDTO struct {
	Parts []partDTO `json:"parts"`
}

type partDTO struct {
	Order     flexInt `json:"order"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Caption   string  `json:"caption"`
	Object    string  `json:"object"`
	Thumbnail string  `json:"thumbnail"`
}

// flexInt accepts 3, "3" and null.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("part order: %w", err)
		}
		if s == "" {
			*f = 0
			return nil
		}
		data = []byte(s)
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("part order %q: %w", data, err)
	}
	*f = flexInt(n)
	return nil
}

func (r *recordDTO) toDomain() document.Document {
	parts := make([]document.Part, 0, len(r.DisplayRecord.Parts))
	for _, p := range r.DisplayRecord.Parts {
		parts = append(parts, document.NewPart(int(p.Order), p.Type, p.Title, p.Caption, p.Object, p.Thumbnail))
	}

	return document.Reconstruct(document.Fields{
		PID:        r.PID,
		ObjectType: document.ObjectType(r.ObjectType),
		Title:      r.Title,
		MemberOf:   r.MemberOf,
		ChildOf:    r.ChildOf,
		MimeType:   r.MimeType,
		Abstract:   r.Abstract,
		Creator:    r.Creator,
		Parts:      parts,
	})
}

// DecodeEntry hydrates a Document from a search hit returned with RETURN 1 $.
func DecodeEntry(e db.SearchEntry) (document.Document, error) {
	raw, ok := e.Fields["$"]
	if !ok || raw == "" {
		return document.Document{}, fmt.Errorf("entry %s: missing JSON body", e.Key)
	}
	return Decode([]byte(raw))
}

// Decode hydrates a Document from its indexed JSON form.
func Decode(data []byte) (document.Document, error) {
	var dto recordDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return document.Document{}, fmt.Errorf("decode record: %w", err)
	}
	if dto.PID == "" {
		return document.Document{}, fmt.Errorf("decode record: pid is empty")
	}
	return dto.toDomain(), nil
}

// Encode renders a Document back into its indexed JSON form. Used by the object cache.
func Encode(d document.Document) ([]byte, error) {
	dto := recordDTO{
		PID:        d.PID(),
		ObjectType: string(d.ObjectType()),
		Title:      d.Title(),
		MemberOf:   d.MemberOf(),
		ChildOf:    d.ChildOf(),
		MimeType:   d.MimeType(),
		Abstract:   d.Abstract(),
		Creator:    d.Creator(),
	}
	for _, p := range d.Parts() {
		dto.DisplayRecord.Parts = append(dto.DisplayRecord.Parts, partDTO{
			Order:     flexInt(p.Order()),
			Type:      p.MimeType(),
			Title:     p.Title(),
			Caption:   p.Caption(),
			Object:    p.ObjectRef(),
			Thumbnail: p.ThumbnailRef(),
		})
	}
	data, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("encode record %s: %w", d.PID(), err)
	}
	return data, nil
}
