package object

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/discovery/internal/db"
	"github.com/kailas-cloud/discovery/internal/domain/document"
)

// Attribute names shared by the index schema and the queries built against it.
const (
	AttrPID        = document.FieldPID
	AttrObjectType = document.FieldObjectType
	AttrMemberOf   = document.FieldMemberOf
	AttrChildOf    = document.FieldChildOf
	AttrTitle      = document.FieldTitle
)

// FacetPath binds a facet attribute to the JSON path it is indexed from.
type FacetPath struct {
	Attribute string
	Path      string
}

// BuildIndex creates the JSON index definition covering every record under prefix.
// Facet attributes that coincide with a structural attribute reuse it.
func BuildIndex(name, prefix string, facets []FacetPath) (*db.IndexDefinition, error) {
	b := db.NewIndex(name).
		OnJSON().
		Prefix(prefix).
		NoStopWords().
		Text("$.pid", AttrPID).
		Tag("$.object_type", AttrObjectType).
		Tag("$.is_member_of_collection[*]", AttrMemberOf).
		TagMissing("$.is_child_of", AttrChildOf).
		SortableText("$.title", AttrTitle)

	reserved := map[string]bool{
		AttrPID: true, AttrObjectType: true, AttrMemberOf: true, AttrChildOf: true, AttrTitle: true,
	}
	for _, f := range facets {
		if reserved[f.Attribute] {
			continue
		}
		b.Tag(f.Path, f.Attribute)
	}

	def, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build index %s: %w", name, err)
	}
	return def, nil
}

// indexManager is the consumer interface for index bootstrap (ISP).
type indexManager interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// EnsureIndex creates def when the store does not have it yet. Returns true if created.
func EnsureIndex(ctx context.Context, s indexManager, def *db.IndexDefinition) (bool, error) {
	exists, err := s.IndexExists(ctx, def.Name)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", def.Name, err)
	}
	if exists {
		return false, nil
	}
	if err := s.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return true, nil
}
