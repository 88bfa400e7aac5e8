package operators

import "github.com/signalgraph/engine/nodegraph"

// Clamp restricts input 0 to the [min, max] range carried in inputs 1/2.
type Clamp struct {
	nodegraph.BaseOperation
}

func NewClamp() *Clamp {
	return &Clamp{BaseOperation: nodegraph.NewBaseOperation("Clamp", "Math.Numerical.Clamp")}
}

func (c *Clamp) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(1),
	}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

func (c *Clamp) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	v := inputs[0].Value()
	lo, hi := inputs[1].Value(), inputs[2].Value()
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	writeConstant(&outputs[0], numSamples, v)
	c.MarkSeen(inputs)
}
