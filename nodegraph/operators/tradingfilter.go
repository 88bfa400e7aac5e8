package operators

import "github.com/signalgraph/engine/nodegraph"

// TradingFilterFlipGate latches a gate high on a positive crossing and low
// on a negative crossing, emitting a one-shot trigger after the configured
// hold delay on each side (a Trading.Filter operator per spec §4.1.6).
type TradingFilterFlipGate struct {
	nodegraph.BaseOperation
	gate    bool
	posHold int
	negHold int
}

func NewTradingFilterFlipGate() *TradingFilterFlipGate {
	return &TradingFilterFlipGate{BaseOperation: nodegraph.NewBaseOperation("Flip Gate", "Trading.Filter.FlipGate")}
}

func (f *TradingFilterFlipGate) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(0),
	}
	n.Outputs = []nodegraph.Output{nodegraph.NewOutput(1), nodegraph.NewOutput(1)}
}

func (f *TradingFilterFlipGate) Reset() {
	f.gate, f.posHold, f.negHold = false, 0, 0
}

func (f *TradingFilterFlipGate) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	posTrigDelay := int(inputs[1].Value())
	negTrigDelay := int(inputs[2].Value())
	in := inputs[0].Value()

	pos := in > 0.01
	neg := in < -0.01

	if f.gate && neg {
		f.gate = false
		f.negHold = 0
	}
	if !f.gate && pos {
		f.gate = true
		f.posHold = 0
	}

	var trig float32 = -1
	if f.gate {
		if f.posHold == posTrigDelay {
			trig = 1
		}
		f.posHold++
	} else {
		if f.negHold == negTrigDelay {
			trig = 1
		}
		f.negHold++
	}

	var gateOut float32 = -1
	if f.gate {
		gateOut = 1
	}

	writeConstant(&outputs[0], numSamples, trig)
	writeConstant(&outputs[1], numSamples, gateOut)
	f.MarkSeen(inputs)
}

// TradingFilterPulseInfo tracks run-length statistics of consecutive
// same-sign samples ("pulses"), reporting the mean and max run length on
// each side over the trailing window of flips (a Trading.Filter operator).
type TradingFilterPulseInfo struct {
	nodegraph.BaseOperation
	posRuns []float32
	negRuns []float32
	prev    float32
}

func NewTradingFilterPulseInfo() *TradingFilterPulseInfo {
	return &TradingFilterPulseInfo{BaseOperation: nodegraph.NewBaseOperation("Flip Info", "Trading.Filter.PulseInfo")}
}

func (p *TradingFilterPulseInfo) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(5),
		nodegraph.NewConstantInput(0.5),
	}
	n.Outputs = []nodegraph.Output{
		nodegraph.NewOutput(1),
		nodegraph.NewOutput(1),
		nodegraph.NewOutput(1),
		nodegraph.NewOutput(1),
	}
}

func (p *TradingFilterPulseInfo) Reset() {
	p.posRuns, p.negRuns, p.prev = nil, nil, 0
}

func (p *TradingFilterPulseInfo) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	maxFlips := int(inputs[1].Value() + 0.5)
	if maxFlips < 1 {
		maxFlips = 1
	}
	if len(p.posRuns) == 0 {
		p.posRuns = append(p.posRuns, 0)
	}
	if len(p.negRuns) == 0 {
		p.negRuns = append(p.negRuns, 0)
	}

	in := inputs[0].Value()
	reversal := (in > 0) != (p.prev > 0)
	if reversal && in > 0 {
		p.posRuns = append(p.posRuns, 0)
		for len(p.posRuns) > maxFlips {
			p.posRuns = p.posRuns[1:]
		}
	} else if reversal && in < 0 {
		p.negRuns = append(p.negRuns, 0)
		for len(p.negRuns) > maxFlips {
			p.negRuns = p.negRuns[1:]
		}
	}

	if in > 0 {
		p.posRuns[len(p.posRuns)-1]++
	} else {
		p.negRuns[len(p.negRuns)-1]++
	}
	p.prev = in

	var meanPos, meanNeg, maxPos, maxNeg float32
	for _, c := range p.posRuns {
		meanPos += c
		if c > maxPos {
			maxPos = c
		}
	}
	for _, c := range p.negRuns {
		meanNeg += c
		if c > maxNeg {
			maxNeg = c
		}
	}

	writeConstant(&outputs[0], numSamples, meanPos/float32(maxFlips))
	writeConstant(&outputs[1], numSamples, meanNeg/float32(maxFlips))
	writeConstant(&outputs[2], numSamples, maxPos)
	writeConstant(&outputs[3], numSamples, maxNeg)
	p.MarkSeen(inputs)
}
