package catalog

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Edge is a single career move between two positions.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// CareerMap is the directed graph of positions formed by the career paths.
type CareerMap struct {
	positions []string
	edges     []Edge
	next      map[string][]string
}

// NewCareerMap builds the graph. Edges keep table order, repeated edges are
// kept once.
func NewCareerMap(paths []CareerPath) *CareerMap {
	m := &CareerMap{next: make(map[string][]string)}

	known := make(map[string]struct{})
	seen := make(map[Edge]struct{})

	for _, path := range paths {
		edge := Edge{From: path.FromPosition, To: path.ToPosition}
		for _, position := range []string{edge.From, edge.To} {
			if _, ok := known[position]; !ok {
				known[position] = struct{}{}
				m.positions = append(m.positions, position)
			}
		}

		if _, ok := seen[edge]; ok {
			continue
		}
		seen[edge] = struct{}{}
		m.edges = append(m.edges, edge)
		m.next[edge.From] = append(m.next[edge.From], edge.To)
	}

	sort.Strings(m.positions)

	return m
}

// Positions returns every position mentioned by a path, sorted.
func (m *CareerMap) Positions() []string {
	return append([]string{}, m.positions...)
}

func (m *CareerMap) Edges() []Edge {
	return append([]Edge{}, m.edges...)
}

// Next returns the destinations reachable in one move from position.
func (m *CareerMap) Next(position string) []string {
	return append([]string(nil), m.next[position]...)
}

// WriteDOT renders the graph in Graphviz DOT format.
func (m *CareerMap) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph careers {")
	fmt.Fprintln(bw, "  rankdir=LR;")
	for _, position := range m.positions {
		fmt.Fprintf(bw, "  %s;\n", strconv.Quote(position))
	}
	for _, edge := range m.edges {
		fmt.Fprintf(bw, "  %s -> %s;\n", strconv.Quote(edge.From), strconv.Quote(edge.To))
	}
	fmt.Fprintln(bw, "}")

	return bw.Flush()
}
