// Package operators implements the operator catalogue taxonomy of spec
// §4.1.6: Math.*, Signal.*, Trading.*, Device IO.*, Data IO, UI and
// Node Graph.* groups, registered against a nodegraph.Schema by RegisterAll.
package operators

import "github.com/signalgraph/engine/nodegraph"

// Add sums its two inputs, per the "Add pipeline" seed test of spec §8.
type Add struct {
	nodegraph.BaseOperation
}

func NewAdd() *Add {
	op := &Add{BaseOperation: nodegraph.NewBaseOperation("Add", "Math.Aritmethic.Add")}
	op.SetInputDefault(0, 0)
	op.SetInputDefault(1, 0)
	return op
}

func (a *Add) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(0),
	}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

func (a *Add) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	sum := inputs[0].Value() + inputs[1].Value()
	writeConstant(&outputs[0], numSamples, sum)
	a.MarkSeen(inputs)
}

// Multiply multiplies its two inputs.
type Multiply struct {
	nodegraph.BaseOperation
}

func NewMultiply() *Multiply {
	op := &Multiply{BaseOperation: nodegraph.NewBaseOperation("Multiply", "Math.Aritmethic.Multiply")}
	op.SetInputDefault(0, 1)
	op.SetInputDefault(1, 1)
	return op
}

func (m *Multiply) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{
		nodegraph.NewConstantInput(1),
		nodegraph.NewConstantInput(1),
	}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

func (m *Multiply) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	product := inputs[0].Value() * inputs[1].Value()
	writeConstant(&outputs[0], numSamples, product)
	m.MarkSeen(inputs)
}

// writeConstant fills the first numSamples frames of a single-channel
// output with a repeated scalar value, growing the buffer as needed.
func writeConstant(out *nodegraph.Output, numSamples int, value float32) {
	if numSamples < 1 {
		numSamples = 1
	}
	out.Grow(numSamples)
	buf := out.Buffer()
	for i := 0; i < numSamples && i < len(buf); i++ {
		buf[i] = value
	}
}
