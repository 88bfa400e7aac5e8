package operators

import "github.com/signalgraph/engine/nodegraph"

// GraphSource is a Node Graph.Source passthrough: its single output mirrors
// its single input unchanged. Typically wired to OutputExternalInput nodes
// that expose an ExternalPointer into caller-owned memory.
type GraphSource struct {
	nodegraph.BaseOperation
}

func NewGraphSource() *GraphSource {
	return &GraphSource{BaseOperation: nodegraph.NewBaseOperation("Source", "Node Graph.Source")}
}

func (s *GraphSource) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{nodegraph.NewConstantInput(0)}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

func (s *GraphSource) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	if numSamples < 1 {
		numSamples = 1
	}
	outputs[0].Grow(numSamples)
	buf := outputs[0].Buffer()
	vals := inputs[0].Values()
	for i := 0; i < numSamples && i < len(buf); i++ {
		if len(vals) == 1 {
			buf[i] = vals[0]
		} else if i < len(vals) {
			buf[i] = vals[i]
		}
	}
	s.MarkSeen(inputs)
}

// GraphOutput is a Node Graph.Output terminal: it has no outputs of its
// own and exists purely to be tagged as a scheduling root (spec §4.1.2),
// pulling its input for side effects (e.g. ExternalOutput publication).
type GraphOutput struct {
	nodegraph.BaseOperation
	last float32
}

func NewGraphOutput() *GraphOutput {
	return &GraphOutput{BaseOperation: nodegraph.NewBaseOperation("Output", "Node Graph.Output")}
}

func (o *GraphOutput) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{nodegraph.NewConstantInput(0)}
	n.Outputs = nil
	n.OutputType = nodegraph.OutputExternalOutput
}

func (o *GraphOutput) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	o.last = inputs[0].Value()
	o.MarkSeen(inputs)
}

// Last returns the most recently pulled value, for callers that poll this
// node's terminal result directly instead of reading an Output slot.
func (o *GraphOutput) Last() float32 { return o.last }
