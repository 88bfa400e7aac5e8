package nodegraph

import "errors"

// Sentinel errors of the nodegraph package. Graph.Validate and
// Graph.ProcessSubgraph return them (wrapped with context where useful).
// The mutating methods (NewNode, SetInputLink, SetInputValue, ...) report
// failure as false or -1 instead, and a refused mutation leaves the graph
// unchanged (spec §7). ErrUnknownTypeID and ErrTypeMismatch are not
// returned by any function in this package.
var (
	ErrUnknownTypeID       = errors.New("nodegraph: unknown node type id")
	ErrNodeNotFound        = errors.New("nodegraph: node not found")
	ErrInvalidChannel      = errors.New("nodegraph: invalid input or output channel")
	ErrWireIntroducesCycle = errors.New("nodegraph: wire introduces a cycle")
	ErrTypeMismatch        = errors.New("nodegraph: input slot kind mismatch")
	ErrNoEntryPoint        = errors.New("nodegraph: no sink nodes registered")
)
