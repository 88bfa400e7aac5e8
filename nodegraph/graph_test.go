package nodegraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addOp sums its two constant/link inputs into a single output, enough to
// exercise scheduling without depending on the operators package (which
// itself imports this one).
type addOp struct {
	BaseOperation
	seenCount int
	tickCount int
}

func (a *addOp) Tick(tickCount uint64, deltaSecs float64) { a.tickCount++ }

func newAddOp() *addOp {
	return &addOp{BaseOperation: NewBaseOperation("Add", "test.Add")}
}

func (a *addOp) DefaultDataInit(n *Node) {
	n.Inputs = []Input{NewConstantInput(0), NewConstantInput(0)}
	n.Outputs = []Output{NewOutput(1)}
}

func (a *addOp) Process(numSamples, numCacheSamples int, inputs []Input, outputs []Output) {
	a.seenCount++
	outputs[0].Grow(1)
	outputs[0].Buffer()[0] = inputs[0].Value() + inputs[1].Value()
}

type sinkOp struct {
	BaseOperation
	last float32
}

func newSinkOp() *sinkOp {
	return &sinkOp{BaseOperation: NewBaseOperation("Output", "test.Output")}
}

func (s *sinkOp) DefaultDataInit(n *Node) {
	n.Inputs = []Input{NewConstantInput(0)}
	n.Outputs = nil
	n.OutputType = OutputExternalOutput
}

func (s *sinkOp) Process(numSamples, numCacheSamples int, inputs []Input, outputs []Output) {
	s.last = inputs[0].Value()
}

const (
	typeAdd int32 = iota + 1
	typeSink
)

func newTestSchema() *Schema {
	schema := NewSchema()
	schema.RegisterNodeType("Math", typeAdd, "Add", func() Operation { return newAddOp() })
	schema.RegisterNodeType("Output", typeSink, "Output", func() Operation { return newSinkOp() })
	return schema
}

func TestAddPipelineProducesSum(t *testing.T) {
	schema := newTestSchema()
	g := NewGraph(schema)

	addID := g.NewNode(typeAdd, 0)
	sinkID := g.NewNode(typeSink, 0)
	require.NotEqual(t, NodeID(-1), addID)
	require.NotEqual(t, NodeID(-1), sinkID)

	require.True(t, g.SetInputValue(addID, 0, []float32{2}, 1))
	require.True(t, g.SetInputValue(addID, 1, []float32{3}, 1))
	require.True(t, g.SetInputLink(sinkID, 0, addID, 0))

	require.NoError(t, g.Validate())
	require.NoError(t, g.ProcessSubgraph(context.Background(), 1, 0))

	sinkNode, _ := g.Node(sinkID)
	assert.Equal(t, float32(5), sinkNode.Operation.(*sinkOp).last)
}

func TestNewNodeReturnsInvalidIDForUnknownType(t *testing.T) {
	g := NewGraph(newTestSchema())
	id := g.NewNode(999, 0)
	assert.Equal(t, invalidNodeID, id)
}

func TestSetInputLinkRejectsSelfCycle(t *testing.T) {
	schema := newTestSchema()
	g := NewGraph(schema)
	addID := g.NewNode(typeAdd, 0)

	assert.False(t, g.SetInputLink(addID, 0, addID, 0))
}

func TestSetInputLinkRejectsIndirectCycle(t *testing.T) {
	schema := newTestSchema()
	g := NewGraph(schema)

	a := g.NewNode(typeAdd, 0)
	b := g.NewNode(typeAdd, 0)

	require.True(t, g.SetInputLink(b, 0, a, 0))
	// Wiring a's input back to b would close a cycle a -> b -> a.
	assert.False(t, g.SetInputLink(a, 0, b, 0))
}

func TestProcessSubgraphWithoutSinksReturnsErrNoEntryPoint(t *testing.T) {
	schema := newTestSchema()
	g := NewGraph(schema)
	g.NewNode(typeAdd, 0)

	err := g.ProcessSubgraph(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrNoEntryPoint)
}

func TestProcessSubgraphIsIdempotentPerNodeWithinOnePass(t *testing.T) {
	schema := newTestSchema()
	g := NewGraph(schema)

	addID := g.NewNode(typeAdd, 0)
	sinkAID := g.NewNode(typeSink, 0)
	sinkBID := g.NewNode(typeSink, 0)

	require.True(t, g.SetInputLink(sinkAID, 0, addID, 0))
	require.True(t, g.SetInputLink(sinkBID, 0, addID, 0))

	require.NoError(t, g.ProcessSubgraph(context.Background(), 1, 0))

	addNode, _ := g.Node(addID)
	assert.Equal(t, 1, addNode.Operation.(*addOp).seenCount)
}

func TestTickVisitsEachNodeOnceAndIsMonotonic(t *testing.T) {
	schema := newTestSchema()
	g := NewGraph(schema)
	id := g.NewNode(typeAdd, 0)

	g.Tick(1, 0.016)
	g.Tick(1, 0.016) // same tick again: no-op
	g.Tick(2, 0.016)

	// Ticks 1 and 2 each reach the operation once; the repeated tick 1 does not.
	n, _ := g.Node(id)
	assert.Equal(t, 2, n.Operation.(*addOp).tickCount)
}

func TestDetachInputRevertsLinkToDefault(t *testing.T) {
	schema := newTestSchema()
	g := NewGraph(schema)

	a := g.NewNode(typeAdd, 0)
	b := g.NewNode(typeAdd, 0)
	require.True(t, g.SetInputLink(b, 0, a, 0))

	g.DetachInput(a)

	bNode, _ := g.Node(b)
	assert.Equal(t, InputConstant, bNode.Inputs[0].Kind)
}

func TestRemoveNodeDetachesInboundLinks(t *testing.T) {
	schema := newTestSchema()
	g := NewGraph(schema)

	a := g.NewNode(typeAdd, 0)
	b := g.NewNode(typeAdd, 0)
	require.True(t, g.SetInputLink(b, 0, a, 0))

	assert.True(t, g.RemoveNode(a))
	_, ok := g.Node(a)
	assert.False(t, ok)

	bNode, _ := g.Node(b)
	assert.Equal(t, InputConstant, bNode.Inputs[0].Kind)
}
