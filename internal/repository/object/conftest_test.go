package object

import (
	"context"

	"github.com/kailas-cloud/discovery/internal/db"
	"github.com/kailas-cloud/discovery/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

type mockIndexManager struct {
	exists    bool
	existsErr error
	createErr error
	created   []*db.IndexDefinition
}

func (m *mockIndexManager) IndexExists(_ context.Context, _ string) (bool, error) {
	return m.exists, m.existsErr
}

func (m *mockIndexManager) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	m.created = append(m.created, def)
	return m.createErr
}

func testIndexes() map[domain.Index]string {
	return map[domain.Index]string{
		domain.IndexPublic:  "discovery:public",
		domain.IndexPrivate: "discovery:private",
	}
}

const compoundJSON = `{
	"pid": "codu:123",
	"object_type": "compound",
	"title": ["Scrapbook", "Alt title"],
	"is_member_of_collection": ["codu:10"],
	"mime_type": "image/tiff",
	"abstract": "Pages of a scrapbook",
	"creator": "Smith, Jane",
	"display_record": {
		"parts": [
			{"order": 1, "type": "image/tiff", "title": "Page 1", "caption": "Cover", "object": "codu:124", "thumbnail": "tn1"},
			{"order": "2", "type": "image/tiff", "title": "Page 2"},
			{"type": "audio/mpeg", "title": "Narration"}
		]
	}
}`
