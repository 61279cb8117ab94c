package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/document"
	"github.com/kailas-cloud/discovery/internal/domain/trail"
)

// --- Mocks ---

type mockResolver struct {
	docs  map[string]document.Document
	err   error
	calls int
}

func (m *mockResolver) Resolve(_ context.Context, _ domain.Index, pid string) (document.Document, error) {
	m.calls++
	if m.err != nil {
		return document.Document{}, m.err
	}
	d, ok := m.docs[pid]
	if !ok {
		return document.Document{}, domain.ErrNotFound
	}
	return d, nil
}

func doc(pid string, title document.Values, parents ...string) document.Document {
	return document.Reconstruct(document.Fields{
		PID:        pid,
		ObjectType: document.TypeCollection,
		Title:      title,
		MemberOf:   document.Multi(parents...),
	})
}

func testConfig(maxDepth int) Config {
	return Config{RootPID: "codu:root", RootName: "Root Collection", RootURL: "https://d.test", MaxDepth: maxDepth}
}

// --- Tests ---

func TestAncestryOf_RootFirst(t *testing.T) {
	r := &mockResolver{docs: map[string]document.Document{
		"codu:3": doc("codu:3", document.Single("Letter"), "codu:2"),
		"codu:2": doc("codu:2", document.Multi("Series", "Alt"), "codu:1", "codu:9"),
		"codu:1": doc("codu:1", document.Values{}, "codu:root"),
	}}
	svc := New(r, testConfig(32))

	got, err := svc.AncestryOf(context.Background(), "codu:3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := trail.Trail{
		{PID: "codu:root", Name: "Root Collection", URL: "https://d.test"},
		{PID: "codu:1", Name: "Untitled Collection", URL: "https://d.test/collection/codu:1"},
		{PID: "codu:2", Name: "Series", URL: "https://d.test/collection/codu:2"},
		{PID: "codu:3", Name: "Letter", URL: "https://d.test/collection/codu:3"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("trail =\n%+v\nwant\n%+v", got, want)
	}

	again, err := svc.AncestryOf(context.Background(), "codu:3")
	if err != nil || !reflect.DeepEqual(again, got) {
		t.Errorf("walk is not idempotent: %+v, %v", again, err)
	}
}

func TestAncestryOf_Root(t *testing.T) {
	r := &mockResolver{}
	got, err := New(r, testConfig(32)).AncestryOf(context.Background(), "codu:root")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].PID != "codu:root" || r.calls != 0 {
		t.Errorf("root trail = %+v (calls %d)", got, r.calls)
	}
}

func TestAncestryOf_MissingParentAttachesToRoot(t *testing.T) {
	r := &mockResolver{docs: map[string]document.Document{
		"codu:5": doc("codu:5", document.Single("Orphan")),
	}}
	got, err := New(r, testConfig(32)).AncestryOf(context.Background(), "codu:5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.PIDs(), []string{"codu:root", "codu:5"}) {
		t.Errorf("trail = %v", got.PIDs())
	}
}

func TestAncestryOf_DepthCeiling(t *testing.T) {
	docs := map[string]document.Document{}
	for i := 1; i <= 10; i++ {
		parent := fmt.Sprintf("codu:%d", i-1)
		if i == 1 {
			parent = "codu:root"
		}
		pid := fmt.Sprintf("codu:%d", i)
		docs[pid] = doc(pid, document.Single(pid), parent)
	}
	r := &mockResolver{docs: docs}

	if _, err := New(r, testConfig(10)).AncestryOf(context.Background(), "codu:10"); err != nil {
		t.Fatalf("depth 10 with ceiling 10 should succeed: %v", err)
	}

	r.calls = 0
	_, err := New(r, testConfig(5)).AncestryOf(context.Background(), "codu:10")
	if !errors.Is(err, domain.ErrHierarchyTooDeep) {
		t.Fatalf("expected ErrHierarchyTooDeep, got %v", err)
	}
	if r.calls != 5 {
		t.Errorf("resolver calls = %d, want 5", r.calls)
	}
}

func TestAncestryOf_CycleTerminates(t *testing.T) {
	r := &mockResolver{docs: map[string]document.Document{
		"codu:a": doc("codu:a", document.Single("A"), "codu:b"),
		"codu:b": doc("codu:b", document.Single("B"), "codu:a"),
	}}

	_, err := New(r, testConfig(8)).AncestryOf(context.Background(), "codu:a")
	if !errors.Is(err, domain.ErrHierarchyTooDeep) {
		t.Fatalf("expected ErrHierarchyTooDeep, got %v", err)
	}
}

func TestAncestryOf_Errors(t *testing.T) {
	r := &mockResolver{docs: map[string]document.Document{
		"codu:3": doc("codu:3", document.Single("Letter"), "codu:2"),
	}}
	if _, err := New(r, testConfig(32)).AncestryOf(context.Background(), "codu:3"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing ancestor: expected ErrNotFound, got %v", err)
	}

	r = &mockResolver{err: domain.ErrUpstreamUnavailable}
	if _, err := New(r, testConfig(32)).AncestryOf(context.Background(), "codu:3"); !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestNames(t *testing.T) {
	r := &mockResolver{docs: map[string]document.Document{
		"codu:1": doc("codu:1", document.Single("First")),
	}}
	got, err := New(r, testConfig(32)).Names(context.Background(), []string{"codu:1", "codu:root", "codu:gone"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := []string{got[0].Name, got[1].Name, got[2].Name}
	if !reflect.DeepEqual(names, []string{"First", "Root Collection", "codu:gone"}) {
		t.Errorf("names = %v", names)
	}

	r = &mockResolver{err: domain.ErrUpstreamUnavailable}
	if _, err := New(r, testConfig(32)).Names(context.Background(), []string{"codu:1"}); err == nil {
		t.Error("expected error on store failure")
	}
}
