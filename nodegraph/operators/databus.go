package operators

import "github.com/signalgraph/engine/nodegraph"

// DataBusIn demultiplexes one interleaved "Bus Data" input into a fixed
// number of single-channel outputs, one per stride slot (a Data IO
// operator per spec §4.1.6).
type DataBusIn struct {
	nodegraph.BaseOperation
	stride int
}

// NewDataBusIn creates a bus demultiplexer with the given channel stride.
func NewDataBusIn(stride int) *DataBusIn {
	if stride < 1 {
		stride = 1
	}
	return &DataBusIn{
		BaseOperation: nodegraph.NewBaseOperation("Bus Data In", "Data IO.BusIn"),
		stride:        stride,
	}
}

func (d *DataBusIn) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{nodegraph.NewArrayInput(d.stride)}
	n.Outputs = make([]nodegraph.Output, d.stride)
	for i := range n.Outputs {
		n.Outputs[i] = nodegraph.NewOutput(1)
	}
}

func (d *DataBusIn) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	if numSamples < 1 {
		numSamples = 1
	}
	bus := inputs[0].Values()
	for ch := 0; ch < d.stride && ch < len(outputs); ch++ {
		outputs[ch].Grow(numSamples)
		buf := outputs[ch].Buffer()
		for i := 0; i < numSamples && i < len(buf); i++ {
			idx := d.stride*i + ch
			if idx < len(bus) {
				buf[i] = bus[idx]
			}
		}
	}
	d.MarkSeen(inputs)
}

// DataBusOut multiplexes a fixed number of single-channel inputs into one
// interleaved "Bus Data" output array (a Data IO operator).
type DataBusOut struct {
	nodegraph.BaseOperation
	stride int
}

// NewDataBusOut creates a bus multiplexer with the given channel stride.
func NewDataBusOut(stride int) *DataBusOut {
	if stride < 1 {
		stride = 1
	}
	return &DataBusOut{
		BaseOperation: nodegraph.NewBaseOperation("Bus Data Out", "Data IO.BusOut"),
		stride:        stride,
	}
}

func (d *DataBusOut) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = make([]nodegraph.Input, d.stride)
	for i := range n.Inputs {
		n.Inputs[i] = nodegraph.NewConstantInput(0)
	}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(d.stride)}
}

func (d *DataBusOut) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	if numSamples < 1 {
		numSamples = 1
	}
	outputs[0].Grow(numSamples)
	buf := outputs[0].Buffer()
	for i := 0; i < numSamples; i++ {
		for ch := 0; ch < d.stride && ch < len(inputs); ch++ {
			idx := d.stride*i + ch
			if idx < len(buf) {
				buf[idx] = inputs[ch].Value()
			}
		}
	}
	d.MarkSeen(inputs)
}
