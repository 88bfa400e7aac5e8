package operators

import (
	"math"

	"github.com/signalgraph/engine/nodegraph"
)

// UICheckbox mirrors a boolean between its input slot and a caller-facing
// state flag: when ExternallyChanged has been called (the UI toggled it),
// the next Process pushes the stored state back onto the input; otherwise
// it reads the input and republishes it on the output (a UI operator per
// spec §4.1.6).
type UICheckbox struct {
	nodegraph.BaseOperation
	externallyChanged bool
	state             bool
}

func NewUICheckbox() *UICheckbox {
	return &UICheckbox{BaseOperation: nodegraph.NewBaseOperation("UI Checkbox", "UI.Checkbox")}
}

func (c *UICheckbox) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{nodegraph.NewConstantInput(0)}
	n.Inputs[0].SetBound(nodegraph.BoundZeroOne, nodegraph.Range{})
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

// State returns the checkbox's last-read value.
func (c *UICheckbox) State() bool { return c.state }

// ExternallyChanged marks that the caller changed the checkbox state
// out of band; the next Process pushes it onto the input slot instead of
// reading from it.
func (c *UICheckbox) ExternallyChanged(state bool) {
	c.state = state
	c.externallyChanged = true
}

func (c *UICheckbox) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	var v float32
	if c.externallyChanged {
		if c.state {
			v = 1
		}
		inputs[0].SetValue(v)
		c.externallyChanged = false
	} else {
		v = inputs[0].Value()
		c.state = v != 0
	}
	var out float32
	if v != 0 {
		out = 1
	}
	writeConstant(&outputs[0], numSamples, out)
	c.MarkSeen(inputs)
}

// UISlider maps its input through a power curve and scale factor, for a
// non-linear UI control (a UI operator).
type UISlider struct {
	nodegraph.BaseOperation
	min, max, power   float32
	externallyChanged bool
	state             float32
}

func NewUISlider(min, max, power float32) *UISlider {
	op := &UISlider{
		BaseOperation: nodegraph.NewBaseOperation("UI Slider", "UI.Slider"),
		min:           min,
		max:           max,
		power:         power,
	}
	op.SetInputDefault(1, power)
	op.SetInputDefault(2, 1)
	return op
}

func (s *UISlider) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(s.power),
		nodegraph.NewConstantInput(1),
	}
	n.Inputs[0].SetBound(nodegraph.BoundCustom, nodegraph.Range{Min: s.min, Max: s.max})
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

// State returns the slider's last-read raw value.
func (s *UISlider) State() float32 { return s.state }

// ExternallyChanged marks that the caller set the slider position out of
// band; the next Process pushes it onto the input slot instead of reading
// from it.
func (s *UISlider) ExternallyChanged(state float32) {
	s.state = state
	s.externallyChanged = true
}

func powf(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}

func (s *UISlider) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	var v float32
	if s.externallyChanged {
		v = s.state
		inputs[0].SetValue(v)
		s.externallyChanged = false
	} else {
		v = inputs[0].Value()
		s.state = v
	}
	power := inputs[1].Value()
	scale := inputs[2].Value()
	writeConstant(&outputs[0], numSamples, scale*powf(v, power))
	s.MarkSeen(inputs)
}
