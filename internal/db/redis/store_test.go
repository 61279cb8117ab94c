package redis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/discovery/internal/db"
	"github.com/kailas-cloud/discovery/internal/domain/search/filter"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

// --- kv.go tests ---

func TestGet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "mykey")).
		Return(mock.Result(mock.RedisBlobString("value")))

	s := NewStoreForTest(c)
	data, err := s.Get(context.Background(), "mykey")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "value" {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "mykey")).
		Return(mock.Result(mock.RedisNil()))

	s := NewStoreForTest(c)
	_, err := s.Get(context.Background(), "mykey")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestGet_NetworkError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "mykey")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.Get(context.Background(), "mykey")
	if errors.Is(err, db.ErrKeyNotFound) {
		t.Error("should not be ErrKeyNotFound for network errors")
	}
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
}

func TestSetWithTTL_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SET" && cmd[1] == "mykey" && cmd[2] == "myvalue" && cmd[3] == "EX"
		})).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.SetWithTTL(context.Background(), "mykey", []byte("myvalue"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetWithTTL_NoExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "mykey", "myvalue")).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.SetWithTTL(context.Background(), "mykey", []byte("myvalue"), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDel_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "mykey")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c)
	if err := s.Del(context.Background(), "mykey"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- index.go tests ---

func TestCreateIndex_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			joined := strings.Join(cmd, " ")
			return cmd[0] == "FT.CREATE" &&
				strings.Contains(joined, "ON JSON PREFIX 1 obj: STOPWORDS 0 SCHEMA") &&
				strings.Contains(joined, "$.pid AS pid TEXT NOSTEM") &&
				strings.Contains(joined, "$.is_child_of AS is_child_of TAG CASESENSITIVE INDEXMISSING")
		})).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	idx := db.NewIndex("discovery:public").
		OnJSON().
		Prefix("obj:").
		NoStopWords().
		Text("$.pid", "pid").
		TagMissing("$.is_child_of", "is_child_of").
		MustBuild()
	if err := s.CreateIndex(context.Background(), idx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE"
		})).
		Return(mock.Result(mock.RedisError("Index already exists")))

	s := NewStoreForTest(c)
	idx := db.NewIndex("idx").Tag("type", "").MustBuild()
	err := s.CreateIndex(context.Background(), idx)
	if !errors.Is(err, db.ErrIndexExists) {
		t.Errorf("expected ErrIndexExists, got %v", err)
	}
}

func TestDropIndex_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.DROPINDEX", "idx")).
		Return(mock.Result(mock.RedisError("Unknown Index name")))

	s := NewStoreForTest(c)
	if err := s.DropIndex(context.Background(), "idx"); !errors.Is(err, db.ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestIndexExists(t *testing.T) {
	tests := []struct {
		name   string
		result rueidis.RedisResult
		want   bool
	}{
		{"exists", mock.Result(mock.RedisArray(mock.RedisString("index_name"), mock.RedisString("idx"))), true},
		{"missing", mock.Result(mock.RedisError("Unknown index name")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			c := mock.NewClient(ctrl)
			c.EXPECT().Do(gomock.Any(), mock.Match("FT.INFO", "idx")).Return(tt.result)

			got, err := NewStoreForTest(c).IndexExists(context.Background(), "idx")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IndexExists = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildFieldArgs_AllTypes(t *testing.T) {
	tests := []struct {
		field db.IndexField
		want  string
	}{
		{db.IndexField{Name: "n", Type: db.IndexFieldNumeric}, "n NUMERIC"},
		{db.IndexField{Name: "$.t", Alias: "t", Type: db.IndexFieldText, NoStem: true}, "$.t AS t TEXT NOSTEM"},
		{db.IndexField{Name: "$.t", Alias: "t", Type: db.IndexFieldText, Sortable: true}, "$.t AS t TEXT SORTABLE"},
		{db.IndexField{Name: "g", Type: db.IndexFieldTag, TagSeparator: "|"}, "g TAG SEPARATOR |"},
	}
	for _, tt := range tests {
		args, err := buildFieldArgs(&tt.field)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.Join(args, " "); got != tt.want {
			t.Errorf("buildFieldArgs = %q, want %q", got, tt.want)
		}
	}
}

func TestBuildFieldArgs_Errors(t *testing.T) {
	if _, err := buildFieldArgs(&db.IndexField{}); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := buildFieldArgs(&db.IndexField{Name: "x", Type: db.IndexFieldType(99)}); err == nil {
		t.Error("expected error for unknown type")
	}
}

// --- search.go tests ---

func TestSearch_NoFacets(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			joined := strings.Join(cmd, " ")
			return cmd[0] == "FT.SEARCH" && cmd[1] == "idx" &&
				cmd[2] == `@pid:(codu) @pid:(123)` &&
				strings.Contains(joined, "RETURN 1 $") &&
				strings.Contains(joined, "LIMIT 0 10")
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(2),
			mock.RedisString("obj:1"),
			mock.RedisArray(mock.RedisString("$"), mock.RedisString(`{"pid":"codu:123"}`)),
			mock.RedisString("obj:2"),
			mock.RedisArray(mock.RedisString("$"), mock.RedisString(`{"pid":"codu:1234"}`)),
		)))

	seg1, _ := filter.NewText("pid", "codu")
	seg2, _ := filter.NewText("pid", "123")
	expr, _ := filter.NewExpression([]filter.Condition{seg1, seg2}, nil, nil)

	s := NewStoreForTest(c)
	res, err := s.Search(context.Background(), &db.SearchQuery{
		IndexName:    "idx",
		Filters:      expr,
		Limit:        10,
		ReturnFields: []string{"$"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 || len(res.Entries) != 2 {
		t.Fatalf("got total=%d entries=%d, want 2/2", res.Total, len(res.Entries))
	}
	if res.Entries[0].Fields["$"] != `{"pid":"codu:123"}` {
		t.Errorf("unexpected fields: %v", res.Entries[0].Fields)
	}
}

func TestSearch_WithFacetsPipelined(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(),
			mock.MatchFn(func(cmd []string) bool {
				return cmd[0] == "FT.SEARCH" && strings.Contains(strings.Join(cmd, " "), "SORTBY title DESC")
			}),
			mock.MatchFn(func(cmd []string) bool {
				joined := strings.Join(cmd, " ")
				return cmd[0] == "FT.AGGREGATE" &&
					strings.Contains(joined, "GROUPBY 1 @type REDUCE COUNT 0 AS count") &&
					strings.Contains(joined, "MAX 200")
			}),
			mock.MatchFn(func(cmd []string) bool {
				return cmd[0] == "FT.AGGREGATE" && strings.Contains(strings.Join(cmd, " "), "@subject")
			}),
		).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisArray(mock.RedisInt64(5))),
			mock.Result(mock.RedisArray(
				mock.RedisInt64(2),
				mock.RedisArray(
					mock.RedisString("type"), mock.RedisString("Image"),
					mock.RedisString("count"), mock.RedisString("4"),
				),
				mock.RedisArray(
					mock.RedisString("type"), mock.RedisString("Sound"),
					mock.RedisString("count"), mock.RedisString("1"),
				),
			)),
			mock.Result(mock.RedisArray(mock.RedisInt64(0))),
		})

	s := NewStoreForTest(c)
	res, err := s.Search(context.Background(), &db.SearchQuery{
		IndexName: "idx",
		SortBy:    "title",
		SortDesc:  true,
		Facets: []db.FacetQuery{
			{Name: "Type", Field: "type", Limit: 200},
			{Name: "Subject", Field: "subject", Limit: 200},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 5 {
		t.Errorf("total = %d, want 5", res.Total)
	}
	if len(res.Facets) != 2 {
		t.Fatalf("facets = %d, want 2", len(res.Facets))
	}
	if res.Facets[0].Name != "Type" || len(res.Facets[0].Buckets) != 2 {
		t.Fatalf("unexpected first facet: %+v", res.Facets[0])
	}
	if b := res.Facets[0].Buckets[0]; b.Value != "Image" || b.Count != 4 {
		t.Errorf("bucket[0] = %+v, want Image/4", b)
	}
	if len(res.Facets[1].Buckets) != 0 {
		t.Errorf("expected no Subject buckets, got %v", res.Facets[1].Buckets)
	}
}

func TestSearch_AggregateError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisArray(mock.RedisInt64(0))),
			mock.ErrorResult(context.DeadlineExceeded),
		})

	s := NewStoreForTest(c)
	_, err := s.Search(context.Background(), &db.SearchQuery{
		IndexName: "idx",
		Facets:    []db.FacetQuery{{Name: "Type", Field: "type"}},
	})
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpAggregate {
		t.Errorf("expected FT.AGGREGATE db.Error, got %v", err)
	}
}

func TestSearch_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.Search(context.Background(), &db.SearchQuery{IndexName: "idx", Limit: 1})
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %v", err)
	}
}

func TestSearch_Validation(t *testing.T) {
	s := NewStoreForTest(nil)
	if _, err := s.Search(context.Background(), &db.SearchQuery{}); err == nil {
		t.Error("expected error for missing index")
	}
	if _, err := s.Search(context.Background(), &db.SearchQuery{IndexName: "i", Offset: -1}); err == nil {
		t.Error("expected error for negative offset")
	}
}

// --- Filter building tests ---

func TestBuildFilter(t *testing.T) {
	member, _ := filter.NewTag("is_member_of_collection", "codu:root")
	typ, _ := filter.NewTag("type", "Still Image")
	orphan, _ := filter.NewMissing("is_child_of")
	excluded, _ := filter.NewTag("object_type", "compound")

	tests := []struct {
		name    string
		must    []filter.Condition
		should  []filter.Condition
		mustNot []filter.Condition
		want    string
	}{
		{"empty", nil, nil, nil, "*"},
		{
			"tag escapes colon",
			[]filter.Condition{member}, nil, nil,
			`@is_member_of_collection:{codu\:root}`,
		},
		{
			"structural plus facet",
			[]filter.Condition{member, orphan, typ}, nil, nil,
			`@is_member_of_collection:{codu\:root} ismissing(@is_child_of) @type:{Still\ Image}`,
		},
		{
			"should group",
			nil, []filter.Condition{typ, excluded}, nil,
			`(@type:{Still\ Image} | @object_type:{compound})`,
		},
		{
			"negative only",
			nil, nil, []filter.Condition{excluded},
			`* -@object_type:{compound}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := filter.NewExpression(tt.must, tt.should, tt.mustNot)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := buildFilter(expr); got != tt.want {
				t.Errorf("buildFilter = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeQuery(t *testing.T) {
	if got := escapeQuery("a-b"); got != `a\-b` {
		t.Errorf("escapeQuery = %q", got)
	}
}

// isDBError is a test helper for checking wrapped db.Error.
func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}
