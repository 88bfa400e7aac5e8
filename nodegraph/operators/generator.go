package operators

import (
	"math"

	"github.com/signalgraph/engine/nodegraph"
)

// SineGenerator produces a sine wave at the frequency (Hz) given by input 0,
// sampled at the rate given by input 1.
type SineGenerator struct {
	nodegraph.BaseOperation
	phase float64
}

func NewSineGenerator() *SineGenerator {
	op := &SineGenerator{BaseOperation: nodegraph.NewBaseOperation("Sine", "Signal.Generator.Sine")}
	op.SetInputDefault(0, 440)
	op.SetInputDefault(1, 44100)
	return op
}

func (s *SineGenerator) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{
		nodegraph.NewConstantInput(440),
		nodegraph.NewConstantInput(44100),
	}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

func (s *SineGenerator) Reset() {
	s.phase = 0
}

func (s *SineGenerator) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	if numSamples < 1 {
		numSamples = 1
	}
	freq := float64(inputs[0].Value())
	rate := float64(inputs[1].Value())
	if rate <= 0 {
		rate = 44100
	}
	outputs[0].Grow(numSamples)
	buf := outputs[0].Buffer()
	step := 2 * math.Pi * freq / rate
	for i := 0; i < numSamples && i < len(buf); i++ {
		buf[i] = float32(math.Sin(s.phase))
		s.phase += step
		if s.phase > 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}
	s.MarkSeen(inputs)
}
