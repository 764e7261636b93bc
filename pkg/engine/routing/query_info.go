package routing

import (
	"github.com/ahouansou/zemroute/pkg"
	da "github.com/ahouansou/zemroute/pkg/datastructure"
)

// ExclusionSet holds the node ids removed from consideration during one
// search. built once per request, never mutated while a search runs.
type ExclusionSet map[da.Index]struct{}

func NewExclusionSet() ExclusionSet {
	return make(ExclusionSet)
}

func (es ExclusionSet) Add(node da.Index) {
	es[node] = struct{}{}
}

func (es ExclusionSet) Contains(node da.Index) bool {
	_, ok := es[node]
	return ok
}

func (es ExclusionSet) Size() int {
	return len(es)
}

// SearchResult is the node path from source to target (inclusive) plus the
// total cost under the weight field the search minimized. an absent path is
// represented by an empty node sequence and cost INF_WEIGHT.
type SearchResult struct {
	path []da.Index
	cost float64
}

func newSearchResult(path []da.Index, cost float64) SearchResult {
	return SearchResult{path: path, cost: cost}
}

func noPathResult() SearchResult {
	return SearchResult{path: nil, cost: pkg.INF_WEIGHT}
}

func (sr SearchResult) GetPath() []da.Index {
	return sr.path
}

func (sr SearchResult) GetCost() float64 {
	return sr.cost
}

func (sr SearchResult) Found() bool {
	return len(sr.path) > 0
}
