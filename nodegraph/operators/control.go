package operators

import "github.com/signalgraph/engine/nodegraph"

// Gain scales input 0 by input 1 (a plain control-signal multiplier,
// distinct from Math.Aritmethic.Multiply only by its schema placement and
// intended use on control-rate signals).
type Gain struct {
	nodegraph.BaseOperation
}

func NewGain() *Gain {
	op := &Gain{BaseOperation: nodegraph.NewBaseOperation("Gain", "Signal.Control.Gain")}
	op.SetInputDefault(1, 1)
	return op
}

func (g *Gain) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{nodegraph.NewConstantInput(0), nodegraph.NewConstantInput(1)}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

func (g *Gain) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	writeConstant(&outputs[0], numSamples, inputs[0].Value()*inputs[1].Value())
	g.MarkSeen(inputs)
}
