package datastructure

import (
	"github.com/ahouansou/zemroute/pkg"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = 0xFFFFFFFF
)

type Vertex struct {
	id  Index
	lat float64
	lon float64
}

func (v Vertex) GetID() Index {
	return v.id
}

func (v Vertex) GetLat() float64 {
	return v.lat
}

func (v Vertex) GetLon() float64 {
	return v.lon
}

// EdgeVariant is one physical road segment between two adjacent intersections.
// the graph is a multigraph: the same ordered vertex pair can carry several
// parallel variants (e.g. a carriageway and its service road).
type EdgeVariant struct {
	length     float64 // meters
	travelTime float64 // seconds, INF_WEIGHT when the source data has none
	names      []string
}

func NewEdgeVariant(length, travelTime float64, names ...string) EdgeVariant {
	return EdgeVariant{
		length:     length,
		travelTime: travelTime,
		names:      names,
	}
}

// NewEdgeVariantNoTravelTime builds a variant whose travel time is unknown.
// an unknown travel time must never win a minimum-selection, so it is stored
// as INF_WEIGHT rather than zero.
func NewEdgeVariantNoTravelTime(length float64, names ...string) EdgeVariant {
	return EdgeVariant{
		length:     length,
		travelTime: pkg.INF_WEIGHT,
		names:      names,
	}
}

func (e EdgeVariant) GetLength() float64 {
	return e.length
}

func (e EdgeVariant) GetTravelTime() float64 {
	return e.travelTime
}

func (e EdgeVariant) GetNames() []string {
	return e.names
}

func (e EdgeVariant) HasTravelTime() bool {
	return e.travelTime < pkg.INF_WEIGHT
}

// Arc groups every parallel variant connecting one ordered vertex pair.
type Arc struct {
	neighbor Index
	variants []EdgeVariant
}

func (a Arc) GetNeighbor() Index {
	return a.neighbor
}

func (a Arc) GetVariants() []EdgeVariant {
	return a.variants
}

// Graph is a directed weighted multigraph over geographic vertices. it is
// read-only after construction: concurrent searches share one instance
// without locking.
type Graph struct {
	vertices []Vertex
	outArcs  [][]Arc
	inArcs   [][]Arc
	numEdges int
}

func NewGraph() *Graph {
	return &Graph{
		vertices: make([]Vertex, 0),
		outArcs:  make([][]Arc, 0),
		inArcs:   make([][]Arc, 0),
	}
}

func NewGraphWithSize(numberOfVertices int) *Graph {
	return &Graph{
		vertices: make([]Vertex, 0, numberOfVertices),
		outArcs:  make([][]Arc, 0, numberOfVertices),
		inArcs:   make([][]Arc, 0, numberOfVertices),
	}
}

func (g *Graph) AddVertex(lat, lon float64) Index {
	id := Index(len(g.vertices))
	g.vertices = append(g.vertices, Vertex{id: id, lat: lat, lon: lon})
	g.outArcs = append(g.outArcs, nil)
	g.inArcs = append(g.inArcs, nil)
	return id
}

// AddEdge appends one directed variant u->v. variants between the same pair
// accumulate on a single arc.
func (g *Graph) AddEdge(u, v Index, variant EdgeVariant) {
	appendVariant := func(arcs []Arc, neighbor Index) []Arc {
		for i := range arcs {
			if arcs[i].neighbor == neighbor {
				arcs[i].variants = append(arcs[i].variants, variant)
				return arcs
			}
		}
		return append(arcs, Arc{neighbor: neighbor, variants: []EdgeVariant{variant}})
	}

	g.outArcs[u] = appendVariant(g.outArcs[u], v)
	g.inArcs[v] = appendVariant(g.inArcs[v], u)
	g.numEdges++
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}

func (g *Graph) HasVertex(u Index) bool {
	return int(u) < len(g.vertices)
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	v := g.vertices[u]
	return v.lat, v.lon
}

// ForOutEdgesOf iterates over every outgoing arc of u with its variant set.
func (g *Graph) ForOutEdgesOf(u Index, fn func(v Index, variants []EdgeVariant)) {
	for _, arc := range g.outArcs[u] {
		fn(arc.neighbor, arc.variants)
	}
}

// ForInEdgesOf iterates over every incoming arc of u with its variant set.
func (g *Graph) ForInEdgesOf(u Index, fn func(v Index, variants []EdgeVariant)) {
	for _, arc := range g.inArcs[u] {
		fn(arc.neighbor, arc.variants)
	}
}

// GetEdgeVariants returns the parallel variant set of the ordered pair u->v.
func (g *Graph) GetEdgeVariants(u, v Index) ([]EdgeVariant, bool) {
	if !g.HasVertex(u) {
		return nil, false
	}
	for _, arc := range g.outArcs[u] {
		if arc.neighbor == v {
			return arc.variants, true
		}
	}
	return nil, false
}

func (g *Graph) ForVertices(fn func(id Index, lat, lon float64)) {
	for _, v := range g.vertices {
		fn(v.id, v.lat, v.lon)
	}
}
