package routing

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/ahouansou/zemroute/pkg"
	"github.com/ahouansou/zemroute/pkg/costfunction"
	da "github.com/ahouansou/zemroute/pkg/datastructure"
	"go.uber.org/zap"
)

type pairEdge struct {
	from, to int
	length   float64
	time     float64
}

func newPairEdge(from, to int, length, time float64) pairEdge {
	return pairEdge{from, to, length, time}
}

// buildTestEngine builds a graph with n vertices placed on a dummy grid and
// one variant per listed directed edge.
func buildTestEngine(t *testing.T, n int, edges []pairEdge) *RoutingEngine {
	t.Helper()

	g := da.NewGraphWithSize(n)
	for i := 0; i < n; i++ {
		g.AddVertex(6.0+float64(i)*0.01, 2.0+float64(i)*0.01)
	}
	for _, e := range edges {
		g.AddEdge(da.Index(e.from), da.Index(e.to), da.NewEdgeVariant(e.length, e.time))
	}

	return NewRoutingEngine(g, zap.NewNop())
}

// bellmanFordDist is an independent reference shortest-distance implementation.
func bellmanFordDist(n int, edges []pairEdge, excluded map[int]struct{},
	weight func(pairEdge) float64, source int) []float64 {
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	if _, ok := excluded[source]; ok {
		return dist
	}
	dist[source] = 0

	for iter := 0; iter < n; iter++ {
		changed := false
		for _, e := range edges {
			if _, ok := excluded[e.from]; ok {
				continue
			}
			if _, ok := excluded[e.to]; ok {
				continue
			}
			w := weight(e)
			if w >= pkg.INF_WEIGHT {
				continue
			}
			if dist[e.from]+w < dist[e.to] {
				dist[e.to] = dist[e.from] + w
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return dist
}

func edgeLength(e pairEdge) float64 { return e.length }

func TestShortestPathDetour(t *testing.T) {
	// 0-1-2-3 is the long chain, 0-4-3 the shortcut through vertex 4
	edges := []pairEdge{
		newPairEdge(0, 1, 10, 10), newPairEdge(1, 0, 10, 10),
		newPairEdge(1, 2, 10, 10), newPairEdge(2, 1, 10, 10),
		newPairEdge(2, 3, 10, 10), newPairEdge(3, 2, 10, 10),
		newPairEdge(0, 4, 5, 5), newPairEdge(4, 0, 5, 5),
		newPairEdge(4, 3, 5, 5), newPairEdge(3, 4, 5, 5),
	}
	engine := buildTestEngine(t, 5, edges)

	testCases := []struct {
		name      string
		excluded  []da.Index
		wantPath  []da.Index
		wantCost  float64
		wantFound bool
	}{
		{
			name:      "shortcut wins",
			wantPath:  []da.Index{0, 4, 3},
			wantCost:  10,
			wantFound: true,
		},
		{
			name:      "excluding the shortcut forces the chain",
			excluded:  []da.Index{4},
			wantPath:  []da.Index{0, 1, 2, 3},
			wantCost:  30,
			wantFound: true,
		},
		{
			name:      "excluding every middle vertex disconnects",
			excluded:  []da.Index{1, 2, 4},
			wantFound: false,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			exclusion := NewExclusionSet()
			for _, ex := range tt.excluded {
				exclusion.Add(ex)
			}

			search := NewBidirectionalSearch(engine, costfunction.NewDistanceCostFunction(), exclusion)
			result, err := search.ShortestPath(context.Background(), 0, 3)
			if err != nil {
				t.Fatalf("err: %v", err)
			}

			if result.Found() != tt.wantFound {
				t.Fatalf("found = %v, want %v", result.Found(), tt.wantFound)
			}
			if !tt.wantFound {
				return
			}
			if !pkg.Eq(result.GetCost(), tt.wantCost) {
				t.Errorf("cost = %v, want %v", result.GetCost(), tt.wantCost)
			}
			if len(result.GetPath()) != len(tt.wantPath) {
				t.Fatalf("path = %v, want %v", result.GetPath(), tt.wantPath)
			}
			for i, node := range result.GetPath() {
				if node != tt.wantPath[i] {
					t.Fatalf("path = %v, want %v", result.GetPath(), tt.wantPath)
				}
			}
		})
	}
}

func TestShortestPathSameSourceAndTarget(t *testing.T) {
	engine := buildTestEngine(t, 2, []pairEdge{newPairEdge(0, 1, 7, 7)})

	search := NewBidirectionalSearch(engine, costfunction.NewTimeCostFunction(), nil)
	result, err := search.ShortestPath(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if !result.Found() {
		t.Fatal("trivial path should be found")
	}
	if !pkg.Eq(result.GetCost(), 0) {
		t.Errorf("cost = %v, want 0", result.GetCost())
	}
	if len(result.GetPath()) != 1 || result.GetPath()[0] != 1 {
		t.Errorf("path = %v, want [1]", result.GetPath())
	}
}

func TestShortestPathUnknownVertex(t *testing.T) {
	engine := buildTestEngine(t, 2, []pairEdge{newPairEdge(0, 1, 7, 7)})

	search := NewBidirectionalSearch(engine, costfunction.NewTimeCostFunction(), nil)
	_, err := search.ShortestPath(context.Background(), 0, 99)
	if !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("err = %v, want ErrNodeNotFound", err)
	}
}

func TestShortestPathMultiEdgeUsesCheapestVariant(t *testing.T) {
	g := da.NewGraph()
	a := g.AddVertex(6.35, 2.4)
	b := g.AddVertex(6.36, 2.41)
	g.AddEdge(a, b, da.NewEdgeVariant(100, 50, "Rue des Cheminots"))
	g.AddEdge(a, b, da.NewEdgeVariant(80, 70, "Boulevard Saint Michel"))
	g.AddEdge(a, b, da.NewEdgeVariantNoTravelTime(60))
	engine := NewRoutingEngine(g, zap.NewNop())

	byTime := NewBidirectionalSearch(engine, costfunction.NewTimeCostFunction(), nil)
	result, err := byTime.ShortestPath(context.Background(), a, b)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !pkg.Eq(result.GetCost(), 50) {
		t.Errorf("time cost = %v, want 50", result.GetCost())
	}

	byDistance := NewBidirectionalSearch(engine, costfunction.NewDistanceCostFunction(), nil)
	result, err = byDistance.ShortestPath(context.Background(), a, b)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !pkg.Eq(result.GetCost(), 60) {
		t.Errorf("distance cost = %v, want 60", result.GetCost())
	}
}

func TestShortestPathMissingTravelTimeNeverWins(t *testing.T) {
	// the only connection to the target has no travel time data: under the
	// duration cost it must be unreachable, under distance it is fine
	g := da.NewGraph()
	a := g.AddVertex(6.35, 2.4)
	b := g.AddVertex(6.36, 2.41)
	g.AddEdge(a, b, da.NewEdgeVariantNoTravelTime(120))
	engine := NewRoutingEngine(g, zap.NewNop())

	byTime := NewBidirectionalSearch(engine, costfunction.NewTimeCostFunction(), nil)
	result, err := byTime.ShortestPath(context.Background(), a, b)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if result.Found() {
		t.Fatal("edge without travel time must not be traversable under duration cost")
	}

	byDistance := NewBidirectionalSearch(engine, costfunction.NewDistanceCostFunction(), nil)
	result, err = byDistance.ShortestPath(context.Background(), a, b)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !result.Found() || !pkg.Eq(result.GetCost(), 120) {
		t.Errorf("distance cost = %v found=%v, want 120 found", result.GetCost(), result.Found())
	}
}

func TestShortestPathCanceledContext(t *testing.T) {
	edges := []pairEdge{
		newPairEdge(0, 1, 1, 1), newPairEdge(1, 2, 1, 1), newPairEdge(2, 3, 1, 1),
	}
	engine := buildTestEngine(t, 4, edges)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	search := NewBidirectionalSearch(engine, costfunction.NewTimeCostFunction(), nil)
	result, err := search.ShortestPath(ctx, 0, 3)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if result.Found() {
		t.Fatal("canceled search must not report a path")
	}
}

func TestShortestPathAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	const n = 60
	edges := make([]pairEdge, 0, n*6)
	// ring so the graph stays connected, plus random chords
	for i := 0; i < n; i++ {
		w := 1 + rng.Float64()*99
		edges = append(edges, newPairEdge(i, (i+1)%n, w, w))
		edges = append(edges, newPairEdge((i+1)%n, i, w, w))
	}
	for k := 0; k < 3*n; k++ {
		u, v := rng.Intn(n), rng.Intn(n)
		if u == v {
			continue
		}
		w := 1 + rng.Float64()*99
		edges = append(edges, newPairEdge(u, v, w, w))
	}

	engine := buildTestEngine(t, n, edges)

	for trial := 0; trial < 50; trial++ {
		source := rng.Intn(n)
		target := rng.Intn(n)

		excluded := make(map[int]struct{})
		exclusion := NewExclusionSet()
		if trial%2 == 1 {
			for k := 0; k < 5; k++ {
				ex := rng.Intn(n)
				if ex == source || ex == target {
					continue
				}
				excluded[ex] = struct{}{}
				exclusion.Add(da.Index(ex))
			}
		}

		want := bellmanFordDist(n, edges, excluded, edgeLength, source)[target]

		search := NewBidirectionalSearch(engine, costfunction.NewDistanceCostFunction(), exclusion)
		result, err := search.ShortestPath(context.Background(), da.Index(source), da.Index(target))
		if err != nil {
			t.Fatalf("err: %v", err)
		}

		if math.IsInf(want, 1) {
			if result.Found() {
				t.Fatalf("trial %d: found a path %v but reference says unreachable", trial, result.GetPath())
			}
			continue
		}

		if !result.Found() {
			t.Fatalf("trial %d: no path from %d to %d, reference cost %v", trial, source, target, want)
		}
		if !pkg.Eq(result.GetCost(), want) {
			t.Fatalf("trial %d: cost = %v, want %v", trial, result.GetCost(), want)
		}

		// the reported path must exist, respect exclusions and add up to the cost
		path := result.GetPath()
		if path[0] != da.Index(source) || path[len(path)-1] != da.Index(target) {
			t.Fatalf("trial %d: path endpoints %v do not match query %d-%d", trial, path, source, target)
		}
		total := 0.0
		for i := 0; i+1 < len(path); i++ {
			if exclusion.Contains(path[i]) || exclusion.Contains(path[i+1]) {
				t.Fatalf("trial %d: path %v crosses an excluded node", trial, path)
			}
			variants, ok := engine.GetGraph().GetEdgeVariants(path[i], path[i+1])
			if !ok {
				t.Fatalf("trial %d: path hop %d-%d has no edge", trial, path[i], path[i+1])
			}
			best := pkg.INF_WEIGHT
			for _, variant := range variants {
				if variant.GetLength() < best {
					best = variant.GetLength()
				}
			}
			total += best
		}
		if !pkg.Eq(total, result.GetCost()) {
			t.Fatalf("trial %d: path length %v does not add up to reported cost %v", trial, total, result.GetCost())
		}
	}
}
