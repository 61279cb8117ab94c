package facet

import (
	"reflect"
	"testing"

	domfacet "github.com/kailas-cloud/discovery/internal/domain/facet"
)

func TestBreadcrumbs_SelectionOrder(t *testing.T) {
	var sel domfacet.Selection
	_ = sel.Add("Type", "Image")
	_ = sel.Add("Type", "Video")

	got := New(Config{}).Breadcrumbs(sel, "/search")

	pairs := make([][2]string, len(got))
	for i, c := range got {
		pairs[i] = [2]string{c.Label, c.Value}
	}
	want := [][2]string{{"Type", "Image"}, {"Type", "Video"}}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("breadcrumbs = %v, want %v", pairs, want)
	}
	if got[0].RemoveURL != "/search?f%5BType%5D=Video" {
		t.Errorf("RemoveURL = %q", got[0].RemoveURL)
	}
}

func TestBreadcrumbs_LabelsInSelectionOrder(t *testing.T) {
	var sel domfacet.Selection
	_ = sel.Add("Date", "1921")
	_ = sel.Add("Creator", "Smith")
	_ = sel.Add("Date", "1920")

	got := New(Config{}).Breadcrumbs(sel, "/c")
	var order []string
	for _, c := range got {
		order = append(order, c.Label+":"+c.Value)
	}
	want := []string{"Date:1921", "Date:1920", "Creator:Smith"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if got[2].RemoveURL != "/c?f%5BDate%5D=1921&f%5BDate%5D=1920" {
		t.Errorf("RemoveURL = %q", got[2].RemoveURL)
	}
}

func TestBreadcrumbs_EmptyIsNil(t *testing.T) {
	if got := New(Config{}).Breadcrumbs(domfacet.Selection{}, "/c"); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestPresent_DropsEmptyValuesAndKeepsStoreOrder(t *testing.T) {
	result := domfacet.Result{
		{Label: "Type", Buckets: []domfacet.Bucket{
			{Value: "Sound", Count: 9},
			{Value: "", Count: 4},
			{Value: "Image", Count: 2},
		}},
		{Label: "Subject", Buckets: []domfacet.Bucket{{Value: "", Count: 1}}},
	}

	got := New(Config{}).Present(result, "/collection/codu:10", domfacet.Selection{})

	typ, ok := got["Type"]
	if !ok || len(typ.Items) != 2 {
		t.Fatalf("Type = %+v", typ)
	}
	if typ.Items[0].Value != "Sound" || typ.Items[1].Value != "Image" || typ.Items[0].Count != 9 {
		t.Errorf("items = %+v", typ.Items)
	}
	if typ.Items[0].SelectURL != "/collection/codu:10?f%5BType%5D=Sound" {
		t.Errorf("SelectURL = %q", typ.Items[0].SelectURL)
	}
	if _, ok := got["Subject"]; ok {
		t.Error("facet with only empty buckets should be omitted")
	}
}

func TestPresent_OrderingOverride(t *testing.T) {
	result := domfacet.Result{{Label: "Date", Buckets: []domfacet.Bucket{
		{Value: "1920", Count: 5}, {Value: "1921", Count: 3}, {Value: "1922", Count: 1},
	}}}

	got := New(Config{Ordering: map[string]string{"Date": OrderDesc}}).Present(result, "/c", domfacet.Selection{})

	var values []string
	for _, it := range got["Date"].Items {
		values = append(values, it.Value)
	}
	if !reflect.DeepEqual(values, []string{"1922", "1921", "1920"}) {
		t.Errorf("values = %v", values)
	}
}

func TestPresent_DisplayLimitAndShowAll(t *testing.T) {
	buckets := make([]domfacet.Bucket, 20)
	for i := range buckets {
		buckets[i] = domfacet.Bucket{Value: string(rune('a' + i)), Count: 1}
	}
	result := domfacet.Result{{Label: "Collections", Buckets: buckets}}
	p := New(Config{DisplayLimits: map[string]int{"Collections": 15}})

	limited := p.Present(result, "/c", domfacet.Selection{})["Collections"]
	if len(limited.Items) != 15 || !limited.Truncated {
		t.Errorf("limited = %d items, truncated=%v", len(limited.Items), limited.Truncated)
	}

	full := p.Present(result, "/c", domfacet.Selection{}, "Collections")["Collections"]
	if len(full.Items) != 20 || full.Truncated {
		t.Errorf("full = %d items, truncated=%v", len(full.Items), full.Truncated)
	}
}

func TestPresent_SelectionAndNames(t *testing.T) {
	var sel domfacet.Selection
	_ = sel.Add("Type", "image/tiff")

	result := domfacet.Result{
		{Label: "Type", Buckets: []domfacet.Bucket{{Value: "image/tiff", Count: 3}, {Value: "Text", Count: 1}}},
		{Label: "Collections", Buckets: []domfacet.Bucket{{Value: "codu:10", Name: "Letters", Count: 3}}},
	}
	p := New(Config{Labels: map[string]map[string][]string{
		"Type": {"Still Image": {"still image", "image/tiff"}},
	}})

	got := p.Present(result, "/c?page=1", sel)

	tiff := got["Type"].Items[0]
	if !tiff.Selected || tiff.Name != "Still Image" {
		t.Errorf("tiff item = %+v", tiff)
	}
	if got["Type"].Items[1].Name != "Text" {
		t.Errorf("unmapped name = %q", got["Type"].Items[1].Name)
	}
	if got["Collections"].Items[0].Name != "Letters" {
		t.Errorf("collections name = %q", got["Collections"].Items[0].Name)
	}
	want := "/c?page=1&f%5BType%5D=image%2Ftiff&f%5BType%5D=Text"
	if got["Type"].Items[1].SelectURL != want {
		t.Errorf("SelectURL = %q, want %q", got["Type"].Items[1].SelectURL, want)
	}

	crumbs := p.Breadcrumbs(sel, "/c")
	if crumbs[0].Name != "Still Image" || crumbs[0].RemoveURL != "/c" {
		t.Errorf("crumb = %+v", crumbs[0])
	}
}
