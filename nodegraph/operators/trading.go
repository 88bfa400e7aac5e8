package operators

import "github.com/signalgraph/engine/nodegraph"

// SimpleMovingAverage maintains a running average of input 0 over a window
// of the last `period` Process calls (a Trading.Indicator operator per
// spec §4.1.6).
type SimpleMovingAverage struct {
	nodegraph.BaseOperation
	period int
	window []float32
	pos    int
	filled bool
	sum    float32
}

func NewSimpleMovingAverage(period int) *SimpleMovingAverage {
	if period < 1 {
		period = 1
	}
	return &SimpleMovingAverage{
		BaseOperation: nodegraph.NewBaseOperation("SMA", "Trading.Indicator.SMA"),
		period:        period,
		window:        make([]float32, period),
	}
}

func (s *SimpleMovingAverage) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{nodegraph.NewConstantInput(0)}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

func (s *SimpleMovingAverage) Reset() {
	for i := range s.window {
		s.window[i] = 0
	}
	s.pos, s.sum, s.filled = 0, 0, false
}

func (s *SimpleMovingAverage) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	v := inputs[0].Value()
	s.sum -= s.window[s.pos]
	s.window[s.pos] = v
	s.sum += v
	s.pos++
	if s.pos >= s.period {
		s.pos = 0
		s.filled = true
	}
	divisor := s.period
	if !s.filled {
		divisor = s.pos
		if divisor == 0 {
			divisor = 1
		}
	}
	writeConstant(&outputs[0], numSamples, s.sum/float32(divisor))
	s.MarkSeen(inputs)
}

// TradingIndicatorOBV and TradingIndicatorRSI are declared in the
// original engine as passthrough placeholders awaiting their real
// formulas; carried over as-is rather than invented.

type TradingIndicatorOBV struct {
	nodegraph.BaseOperation
}

func NewTradingIndicatorOBV() *TradingIndicatorOBV {
	return &TradingIndicatorOBV{BaseOperation: nodegraph.NewBaseOperation("OBV Indicator", "Trading.Indicator.OBV")}
}

func (t *TradingIndicatorOBV) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{nodegraph.NewConstantInput(0)}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

func (t *TradingIndicatorOBV) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	writeConstant(&outputs[0], numSamples, inputs[0].Value())
	t.MarkSeen(inputs)
}

type TradingIndicatorRSI struct {
	nodegraph.BaseOperation
}

func NewTradingIndicatorRSI() *TradingIndicatorRSI {
	return &TradingIndicatorRSI{BaseOperation: nodegraph.NewBaseOperation("RSI Indicator", "Trading.Indicator.RSI")}
}

func (t *TradingIndicatorRSI) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{nodegraph.NewConstantInput(0)}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1)}
}

func (t *TradingIndicatorRSI) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	writeConstant(&outputs[0], numSamples, inputs[0].Value())
	t.MarkSeen(inputs)
}
