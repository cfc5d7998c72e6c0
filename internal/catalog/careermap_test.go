package catalog

import (
	"bytes"
	"reflect"
	"testing"
)

func TestCareerMap(t *testing.T) {
	paths := []CareerPath{
		{FromPosition: "Developer", ToPosition: "Tech Lead"},
		{FromPosition: "Developer", ToPosition: "Architect"},
		{FromPosition: "Tech Lead", ToPosition: "Engineering Manager"},
		{FromPosition: "Developer", ToPosition: "Tech Lead"},
	}

	m := NewCareerMap(paths)

	expectedPositions := []string{"Architect", "Developer", "Engineering Manager", "Tech Lead"}
	if !reflect.DeepEqual(m.Positions(), expectedPositions) {
		t.Fatalf("unexpected positions: %v", m.Positions())
	}

	edges := m.Edges()
	if len(edges) != 3 {
		t.Fatalf("expected repeated edge to be dropped, got %v", edges)
	}
	if edges[0] != (Edge{From: "Developer", To: "Tech Lead"}) {
		t.Fatalf("expected table order, got %v", edges)
	}

	if next := m.Next("Developer"); !reflect.DeepEqual(next, []string{"Tech Lead", "Architect"}) {
		t.Fatalf("unexpected next positions: %v", next)
	}
	if next := m.Next("Architect"); len(next) != 0 {
		t.Fatalf("expected no moves from Architect, got %v", next)
	}

	m.Positions()[0] = "mutated"
	if m.Positions()[0] != "Architect" {
		t.Fatalf("positions must not be shared with callers")
	}
}

func TestCareerMapWriteDOT(t *testing.T) {
	m := NewCareerMap([]CareerPath{{FromPosition: "Analyst", ToPosition: `Senior "Data" Analyst`}})

	var buf bytes.Buffer
	if err := m.WriteDOT(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "digraph careers {\n" +
		"  rankdir=LR;\n" +
		"  \"Analyst\";\n" +
		"  \"Senior \\\"Data\\\" Analyst\";\n" +
		"  \"Analyst\" -> \"Senior \\\"Data\\\" Analyst\";\n" +
		"}\n"

	if buf.String() != expected {
		t.Fatalf("unexpected DOT output:\n%s", buf.String())
	}
}
