package operators

import "github.com/signalgraph/engine/nodegraph"

// LowPass is a one-pole smoothing filter: out[n] = out[n-1] + a*(in[n] - out[n-1]).
// Input 1 carries the pole coefficient a in [0, 1].
type LowPass struct {
	nodegraph.BaseOperation
	state float32
}

func NewLowPass() *LowPass {
	op := &LowPass{BaseOperation: nodegraph.NewBaseOperation("Low Pass", "Signal.Filter.LowPass")}
	op.SetInputDefault(1, 0.1)
	return op
}

func (f *LowPass) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(0.1),
	}
	n.Inputs[1].SetBound(nodegraph.BoundZeroOne, nodegraph.Range{})
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

func (f *LowPass) Reset() {
	f.state = 0
}

func (f *LowPass) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	if numSamples < 1 {
		numSamples = 1
	}
	a := inputs[1].Value()
	outputs[0].Grow(numSamples)
	buf := outputs[0].Buffer()
	in := inputs[0].Value()
	for i := 0; i < numSamples && i < len(buf); i++ {
		f.state += a * (in - f.state)
		buf[i] = f.state
	}
	f.MarkSeen(inputs)
}
