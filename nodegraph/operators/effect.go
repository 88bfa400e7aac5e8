package operators

import "github.com/signalgraph/engine/nodegraph"

// Saturator soft-clips its two inputs with a sigmoid knee above a
// configurable limit, then mixes wet/dry (a Signal.Effect operator per
// spec §4.1.6).
type Saturator struct {
	nodegraph.BaseOperation
}

func NewSaturator() *Saturator {
	op := &Saturator{BaseOperation: nodegraph.NewBaseOperation("Saturator", "Signal.Effect.Saturator")}
	op.SetInputDefault(2, 0.5)
	op.SetInputDefault(3, 1.5)
	op.SetInputDefault(4, 0.6)
	op.SetInputDefault(5, 1.4)
	return op
}

func (s *Saturator) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(0.5),
		nodegraph.NewConstantInput(1.5),
		nodegraph.NewConstantInput(0.6),
		nodegraph.NewConstantInput(1.4),
	}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1), nodegraph.NewOutput(1)}
}

func saturateOne(v, preamp, limit float32) float32 {
	in := v * preamp
	if in >= limit || in <= -limit {
		span := (1 - limit) * 1.5
		if span <= 0 {
			span = 1
		}
		if in > 0 {
			in = limit + (1-limit)*sigmoidFast((in-limit)/span)
		} else {
			in = -(limit + (1-limit)*sigmoidFast((-in-limit)/span))
		}
	}
	return in
}

// sigmoidFast approximates the original's l::math::functions::sigmoidFast
// with x/(1+|x|); it is not a literal translation.
func sigmoidFast(x float32) float32 {
	return x / (1 + abs32(x))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (s *Saturator) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	wet := inputs[2].Value()
	preamp := inputs[3].Value()
	limit := inputs[4].Value()
	postamp := inputs[5].Value()
	wet = postamp * wet
	dry := postamp * (1 - wet)

	in0 := saturateOne(inputs[0].Value(), preamp, limit)
	in1 := saturateOne(inputs[1].Value(), preamp, limit)

	writeConstant(&outputs[0], numSamples, dry*inputs[0].Value()+wet*in0)
	writeConstant(&outputs[1], numSamples, dry*inputs[1].Value()+wet*in1)
	s.MarkSeen(inputs)
}

// EnvelopeFollower tracks the peak of its two inputs with independent
// attack/release running-weighted-average coefficients and writes the
// envelope's magnitude to its single output (a Signal.Effect operator).
type EnvelopeFollower struct {
	nodegraph.BaseOperation
	inputs   *nodegraph.InputManager
	envelope float32
}

func NewEnvelopeFollower() *EnvelopeFollower {
	op := &EnvelopeFollower{
		BaseOperation: nodegraph.NewBaseOperation("Envelope Follower", "Signal.Effect.EnvelopeFollower"),
		inputs:        nodegraph.NewInputManager(),
	}
	op.SetInputDefault(2, 5)
	op.SetInputDefault(3, 100)
	// Attack/release times are read with RWA smoothing (spec §4.1.5) so a
	// caller automating these sliders doesn't snap the envelope's time
	// constants abruptly mid-signal.
	op.inputs.AddInput(2, nodegraph.SampledRwa)
	op.inputs.AddInput(3, nodegraph.SampledRwa)
	return op
}

func (e *EnvelopeFollower) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(5),
		nodegraph.NewConstantInput(100),
	}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

func (e *EnvelopeFollower) Reset() {
	e.envelope = 0
	e.inputs.Reset()
}

// rwaFactorFromMs approximates the original's GetRWAFactorFromMS; it is not
// a literal translation. It returns 1/N, where N = (ms/1000)/step is the
// time constant counted in updates of step seconds each (the first-order
// form of 1-exp(-1/N)), capped at 1 so the envelope never overshoots.
func rwaFactorFromMs(ms, step float32) float32 {
	if ms <= 0 {
		return 1
	}
	f := step / (ms / 1000)
	if f > 1 {
		return 1
	}
	return f
}

func (e *EnvelopeFollower) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	attack := rwaFactorFromMs(e.inputs.Read(2, inputs[2].Value()), 1)
	release := rwaFactorFromMs(e.inputs.Read(3, inputs[3].Value()), 1)

	in0, in1 := inputs[0].Value(), inputs[1].Value()
	in := in0
	if in1 > in0 {
		in = in1
	}
	if in > e.envelope {
		e.envelope += attack * (in - e.envelope)
	} else {
		e.envelope += release * (in - e.envelope)
	}
	writeConstant(&outputs[0], numSamples, abs32(e.envelope))
	e.MarkSeen(inputs)
}
