package operators

import "github.com/signalgraph/engine/nodegraph"

// GreaterThan outputs 1 when input 0 exceeds input 1, else 0.
type GreaterThan struct {
	nodegraph.BaseOperation
}

func NewGreaterThan() *GreaterThan {
	return &GreaterThan{BaseOperation: nodegraph.NewBaseOperation("Greater Than", "Math.Logic.GreaterThan")}
}

func (g *GreaterThan) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{nodegraph.NewConstantInput(0), nodegraph.NewConstantInput(0)}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

func (g *GreaterThan) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	var v float32
	if inputs[0].Value() > inputs[1].Value() {
		v = 1
	}
	writeConstant(&outputs[0], numSamples, v)
	g.MarkSeen(inputs)
}

// And outputs 1 when both inputs are non-zero.
type And struct {
	nodegraph.BaseOperation
}

func NewAnd() *And {
	return &And{BaseOperation: nodegraph.NewBaseOperation("And", "Math.Logic.And")}
}

func (a *And) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{nodegraph.NewConstantInput(0), nodegraph.NewConstantInput(0)}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

func (a *And) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	var v float32
	if inputs[0].Value() != 0 && inputs[1].Value() != 0 {
		v = 1
	}
	writeConstant(&outputs[0], numSamples, v)
	a.MarkSeen(inputs)
}
