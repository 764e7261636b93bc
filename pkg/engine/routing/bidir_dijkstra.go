package routing

import (
	"context"

	"github.com/ahouansou/zemroute/pkg"
	"github.com/ahouansou/zemroute/pkg/costfunction"
	da "github.com/ahouansou/zemroute/pkg/datastructure"
	"github.com/ahouansou/zemroute/pkg/util"
)

// BidirectionalSearch runs Dijkstra from both endpoints at once, one frontier
// rooted at the source over out-edges and one rooted at the target over
// in-edges. every search allocates its own frontier state, so concurrent
// requests can share one graph without locking.
type BidirectionalSearch struct {
	engine    *RoutingEngine
	costFn    costfunction.CostFunction
	exclusion ExclusionSet

	forwardPq  *da.MinHeap[da.Index]
	backwardPq *da.MinHeap[da.Index]

	distForward  map[da.Index]float64
	distBackward map[da.Index]float64

	parentForward  map[da.Index]da.Index
	parentBackward map[da.Index]da.Index

	visitedForward  map[da.Index]struct{}
	visitedBackward map[da.Index]struct{}

	mu           float64
	meetingNode  da.Index
	meetingFound bool

	numSettledNodes int
}

func NewBidirectionalSearch(engine *RoutingEngine, costFn costfunction.CostFunction,
	exclusion ExclusionSet) *BidirectionalSearch {
	if exclusion == nil {
		exclusion = NewExclusionSet()
	}
	return &BidirectionalSearch{
		engine:          engine,
		costFn:          costFn,
		exclusion:       exclusion,
		forwardPq:       da.NewFourAryHeap[da.Index](),
		backwardPq:      da.NewFourAryHeap[da.Index](),
		distForward:     make(map[da.Index]float64),
		distBackward:    make(map[da.Index]float64),
		parentForward:   make(map[da.Index]da.Index),
		parentBackward:  make(map[da.Index]da.Index),
		visitedForward:  make(map[da.Index]struct{}),
		visitedBackward: make(map[da.Index]struct{}),
		mu:              pkg.INF_WEIGHT,
	}
}

// ShortestPath computes the lowest-cost path from source to target under the
// configured cost function, never settling or relaxing into an excluded node.
//
// termination follows the standard bidirectional-Dijkstra criterion: once the
// sum of the two frontier minimum keys reaches the best connection cost mu,
// no unexplored frontier pair can beat mu.
func (bs *BidirectionalSearch) ShortestPath(ctx context.Context, source, target da.Index) (SearchResult, error) {
	graph := bs.engine.graph

	if !graph.HasVertex(source) {
		return noPathResult(), util.WrapErrorf(ErrNodeNotFound, util.ErrNotFound,
			"source node %d not in graph", source)
	}
	if !graph.HasVertex(target) {
		return noPathResult(), util.WrapErrorf(ErrNodeNotFound, util.ErrNotFound,
			"target node %d not in graph", target)
	}

	// the general loop does not guarantee the trivial case, so short-circuit
	if source == target {
		return newSearchResult([]da.Index{source}, 0), nil
	}

	bs.distForward[source] = 0
	bs.distBackward[target] = 0

	bs.forwardPq.Insert(da.NewPriorityQueueNode(0, source))
	bs.backwardPq.Insert(da.NewPriorityQueueNode(0, target))

	for !bs.forwardPq.IsEmpty() && !bs.backwardPq.IsEmpty() {
		if bs.forwardPq.GetMinrank()+bs.backwardPq.GetMinrank() >= bs.mu {
			break
		}

		if util.StopConcurrentOperation(ctx) {
			return noPathResult(), ctx.Err()
		}

		bs.forwardStep()
		bs.backwardStep()
	}

	if !bs.meetingFound {
		return noPathResult(), nil
	}

	return newSearchResult(bs.reconstructPath(), bs.mu), nil
}

func (bs *BidirectionalSearch) forwardStep() {
	if bs.forwardPq.IsEmpty() {
		return
	}

	node, _ := bs.forwardPq.ExtractMin()
	u := node.GetItem()

	// stale queue entries are skipped at pop time instead of decreased in place
	if _, settled := bs.visitedForward[u]; settled {
		return
	}
	if bs.exclusion.Contains(u) {
		return
	}
	bs.visitedForward[u] = struct{}{}
	bs.numSettledNodes++

	dU := node.GetRank()

	bs.engine.graph.ForOutEdgesOf(u, func(v da.Index, variants []da.EdgeVariant) {
		if bs.exclusion.Contains(v) {
			return
		}

		newCost := dU + bs.costFn.GetWeight(variants)
		if newCost >= pkg.INF_WEIGHT {
			return
		}

		if cur, labelled := bs.distForward[v]; !labelled || newCost < cur {
			bs.distForward[v] = newCost
			bs.parentForward[v] = u
			bs.forwardPq.Insert(da.NewPriorityQueueNode(newCost, v))

			if dBackward, seenBackward := bs.distBackward[v]; seenBackward {
				if total := newCost + dBackward; total < bs.mu {
					bs.mu = total
					bs.meetingNode = v
					bs.meetingFound = true
				}
			}
		}
	})
}

func (bs *BidirectionalSearch) backwardStep() {
	if bs.backwardPq.IsEmpty() {
		return
	}

	node, _ := bs.backwardPq.ExtractMin()
	v := node.GetItem()

	if _, settled := bs.visitedBackward[v]; settled {
		return
	}
	if bs.exclusion.Contains(v) {
		return
	}
	bs.visitedBackward[v] = struct{}{}
	bs.numSettledNodes++

	dV := node.GetRank()

	bs.engine.graph.ForInEdgesOf(v, func(u da.Index, variants []da.EdgeVariant) {
		if bs.exclusion.Contains(u) {
			return
		}

		newCost := dV + bs.costFn.GetWeight(variants)
		if newCost >= pkg.INF_WEIGHT {
			return
		}

		if cur, labelled := bs.distBackward[u]; !labelled || newCost < cur {
			bs.distBackward[u] = newCost
			bs.parentBackward[u] = v
			bs.backwardPq.Insert(da.NewPriorityQueueNode(newCost, u))

			if dForward, seenForward := bs.distForward[u]; seenForward {
				if total := dForward + newCost; total < bs.mu {
					bs.mu = total
					bs.meetingNode = u
					bs.meetingFound = true
				}
			}
		}
	})
}

// reconstructPath walks the forward parent chain from the meeting node back to
// the source, reverses it, then appends the backward successor chain from the
// meeting node to the target (meeting node itself excluded to avoid the dup).
func (bs *BidirectionalSearch) reconstructPath() []da.Index {
	pathForward := make([]da.Index, 0)
	cur := bs.meetingNode
	for {
		pathForward = append(pathForward, cur)
		parent, ok := bs.parentForward[cur]
		if !ok {
			break
		}
		cur = parent
	}
	pathForward = util.ReverseG(pathForward)

	cur, ok := bs.parentBackward[bs.meetingNode]
	for ok {
		pathForward = append(pathForward, cur)
		cur, ok = bs.parentBackward[cur]
	}

	return pathForward
}

func (bs *BidirectionalSearch) GetNumSettledNodes() int {
	return bs.numSettledNodes
}
