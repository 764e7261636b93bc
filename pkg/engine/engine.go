package engine

import (
	"github.com/ahouansou/zemroute/pkg/datastructure"
	"github.com/ahouansou/zemroute/pkg/engine/routing"
	"go.uber.org/zap"
)

type Engine struct {
	routingEngine *routing.RoutingEngine
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.routingEngine
}

// NewEngine loads the already-built road graph from disk and wraps it in a
// routing engine. graph acquisition and annotation happen upstream; this
// process only reads the result.
func NewEngine(graphFilePath string, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting routing engine...")

	logger.Info("Reading graph", zap.String("graphFilePath", graphFilePath))
	graph, err := datastructure.ReadGraph(graphFilePath)
	if err != nil {
		return nil, err
	}
	logger.Info("Graph loaded",
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()))

	return &Engine{
		routingEngine: routing.NewRoutingEngine(graph, logger),
	}, nil
}

// NewEngineDirect wires an in-memory graph, used by tests and tools that
// build their own graph.
func NewEngineDirect(graph *datastructure.Graph, logger *zap.Logger) *Engine {
	return &Engine{
		routingEngine: routing.NewRoutingEngine(graph, logger),
	}
}
