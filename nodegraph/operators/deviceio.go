package operators

import "github.com/signalgraph/engine/nodegraph"

// Speaker drains interleaved stereo frames from inputs 0/1 into a
// nodegraph.StreamSink, following the call pattern of spec §6.3: while
// CanWrite(), fill FramesPerPart() interleaved frames and Commit().
type Speaker struct {
	nodegraph.BaseOperation
	sink nodegraph.StreamSink
}

// NewSpeaker binds an operator instance to a concrete sink. The sink is a
// narrow collaborator (§6.3); the graph never owns its lifetime.
func NewSpeaker(sink nodegraph.StreamSink) *Speaker {
	return &Speaker{
		BaseOperation: nodegraph.NewBaseOperation("Speaker", "Device IO.Output.Speaker"),
		sink:          sink,
	}
}

func (sp *Speaker) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{nodegraph.NewConstantInput(0), nodegraph.NewConstantInput(0)}
	n.Outputs = nil
	n.OutputType = nodegraph.OutputExternalOutput
}

func (sp *Speaker) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	if sp.sink == nil {
		return
	}
	left, right := inputs[0].Values(), inputs[1].Values()
	for sp.sink.CanWrite() {
		frames := sp.sink.FramesPerPart()
		buf := sp.sink.WriteBuffer()
		for f := 0; f < frames && 2*f+1 < len(buf); f++ {
			var l, r float32
			if f < len(left) {
				l = left[f]
			}
			if f < len(right) {
				r = right[f]
			} else if f < len(left) {
				r = left[f]
			}
			buf[2*f] = l
			buf[2*f+1] = r
		}
		sp.sink.Commit()
	}
}
