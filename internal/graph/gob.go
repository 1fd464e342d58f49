package graph

import (
	"bytes"
	"encoding/gob"
)

// wireGraph is the flat, exported shape Graph is encoded as. gob cannot see
// Graph's unexported fields directly, so the corpus and discrepancy log
// encode/decode through this type instead of the live Graph.
type wireGraph struct {
	Attrs Attrs
	Nodes []int
	Edges []Edge
}

// GobEncode implements gob.GobEncoder.
func (g *Graph) GobEncode() ([]byte, error) {
	g.mu.RLock()
	w := wireGraph{Attrs: g.attrs, Nodes: g.Nodes()}
	g.mu.RUnlock()
	for _, e := range g.Edges() {
		w.Edges = append(w.Edges, *e)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (g *Graph) GobDecode(data []byte) error {
	var w wireGraph
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}

	g.attrs = w.Attrs
	g.nodes = make(map[int]struct{})
	g.adj = make(map[int]map[int][]*Edge)
	for _, id := range w.Nodes {
		g.AddNode(id)
	}
	for _, e := range w.Edges {
		g.AddEdge(e.From, e.To, e.Weight)
	}
	return nil
}
