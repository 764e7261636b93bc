package routing

import (
	"errors"

	"github.com/ahouansou/zemroute/pkg/datastructure"
	"go.uber.org/zap"
)

var (
	ErrNodeNotFound = errors.New("node not found in graph")
	ErrMissingEdge  = errors.New("edge data missing between consecutive path nodes")
)

type RoutingEngine struct {
	graph  *datastructure.Graph
	logger *zap.Logger
}

func NewRoutingEngine(graph *datastructure.Graph, logger *zap.Logger) *RoutingEngine {
	return &RoutingEngine{
		graph:  graph,
		logger: logger,
	}
}

func (re *RoutingEngine) GetGraph() *datastructure.Graph {
	return re.graph
}
