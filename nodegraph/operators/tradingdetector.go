package operators

import "github.com/signalgraph/engine/nodegraph"

// trendBasic compares an input against its last three samples and scores
// the bullish/bearish tilt, weighting the most recent comparison highest.
type trendBasic struct {
	prev1, prev2, prev3 float32
}

func (t *trendBasic) process(in float32) float32 {
	bull1 := in > t.prev1
	bull2 := in > t.prev2
	bull3 := in > t.prev3
	t.prev3, t.prev2, t.prev1 = t.prev2, t.prev1, in

	trend := float32(-0.3)
	if bull3 {
		trend = 0.3
	}
	if bull2 {
		trend += 0.35
	} else {
		trend -= 0.35
	}
	if bull1 {
		trend += 0.45
	} else {
		trend -= 0.45
	}
	return trend
}

// trendMean compares an input against a weighted mean of its trailing
// history window, returning +1/-1 for above/below.
type trendMean struct {
	history []float32
}

func (t *trendMean) process(in float32, numSamples int) float32 {
	if numSamples < 1 {
		numSamples = 1
	}
	if len(t.history) != numSamples {
		t.history = make([]float32, numSamples)
	}
	factor := float32(1) / float32(len(t.history)+1)
	acc := factor
	var mean float32
	for _, v := range t.history {
		mean += v * acc
		acc += factor
	}
	mean = (mean + in) * factor

	bullish := in > mean
	t.history = append(t.history[1:], in)
	if bullish {
		return 1
	}
	return -1
}

// reversal4x scores a 4-sample trough/peak reversal pattern in [-1, 1].
type reversal4x struct {
	prev1, prev2, prev3, prev4 float32
}

func (r *reversal4x) process(in float32) float32 {
	diff01 := in - r.prev1
	diff12 := r.prev1 - r.prev2
	diff23 := r.prev2 - r.prev3
	diff34 := r.prev3 - r.prev4

	bull1 := diff01 > 0
	bear1 := diff01 < 0

	troph1 := bull1 && diff12 < 0
	troph2 := troph1 && diff23 < 0
	troph3 := troph2 && diff34 < 0

	peak1 := bear1 && diff12 > 0
	peak2 := peak1 && diff23 > 0
	peak3 := peak2 && diff34 > 0

	troph := boolScore(troph1) + boolScore(troph2) + boolScore(troph3)
	peak := boolScore(peak1) + boolScore(peak2) + boolScore(peak3)

	r.prev4, r.prev3, r.prev2, r.prev1 = r.prev3, r.prev2, r.prev1, in
	return (troph - peak) * 0.33
}

// acceleration4x scores whether consecutive differences are accelerating
// in the same direction across a 4-sample window.
type acceleration4x struct {
	prev1, prev2, prev3, prev4 float32
}

func (a *acceleration4x) process(in float32) float32 {
	diff01 := in - a.prev1
	diff12 := a.prev1 - a.prev2
	diff23 := a.prev2 - a.prev3
	diff34 := a.prev3 - a.prev4

	bull1 := diff01 > 0
	bear1 := diff01 < 0

	bullish1 := bull1 && diff01 > diff12
	bullish2 := bullish1 && diff12 > diff23
	bullish3 := bullish2 && diff23 > diff34

	bearish1 := bear1 && diff01 < diff12
	bearish2 := bearish1 && diff12 < diff23
	bearish3 := bearish2 && diff23 < diff34

	bullish := boolScore(bullish1) + boolScore(bullish2) + boolScore(bullish3)
	bearish := boolScore(bearish1) + boolScore(bearish2) + boolScore(bearish3)

	a.prev4, a.prev3, a.prev2, a.prev1 = a.prev3, a.prev2, a.prev1, in
	return (bullish - bearish) * 0.33
}

func boolScore(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// TradingDetectorTrend fans a single input out into four independent
// trend readings: a short-memory basic trend, a windowed-mean trend, a
// 4-sample reversal score, and a 4-sample acceleration score (a
// Trading.Detector operator per spec §4.1.6).
type TradingDetectorTrend struct {
	nodegraph.BaseOperation
	basic trendBasic
	mean  trendMean
	rev   reversal4x
	accel acceleration4x
}

func NewTradingDetectorTrend() *TradingDetectorTrend {
	op := &TradingDetectorTrend{BaseOperation: nodegraph.NewBaseOperation("Trend Detector", "Trading.Detector.Trend")}
	op.SetInputDefault(1, 6)
	return op
}

func (t *TradingDetectorTrend) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(6),
	}
	n.Inputs[1].SetBound(nodegraph.BoundCustom, nodegraph.Range{Min: 1, Max: 50})
	n.Outputs = []nodegraph.Output{
		nodegraph.NewOutput(1),
		nodegraph.NewOutput(1),
		nodegraph.NewOutput(1),
		nodegraph.NewOutput(1),
	}
}

func (t *TradingDetectorTrend) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	in := inputs[0].Value()
	numTrendSamples := int(inputs[1].Value())
	if numTrendSamples < 1 {
		numTrendSamples = 1
	}

	writeConstant(&outputs[0], numSamples, t.basic.process(in))
	writeConstant(&outputs[1], numSamples, t.mean.process(in, numTrendSamples))
	writeConstant(&outputs[2], numSamples, t.rev.process(in))
	writeConstant(&outputs[3], numSamples, t.accel.process(in))
	t.MarkSeen(inputs)
}

// TradingDetectorTrendDiff runs the same trend/reversal/acceleration
// detectors over the difference of two inputs, surfacing divergence
// between a fast and a slow series (a Trading.Detector operator).
type TradingDetectorTrendDiff struct {
	nodegraph.BaseOperation
	trend trendBasic
	rev   reversal4x
	accel acceleration4x
}

func NewTradingDetectorTrendDiff() *TradingDetectorTrendDiff {
	return &TradingDetectorTrendDiff{BaseOperation: nodegraph.NewBaseOperation("Trend Difference Detector", "Trading.Detector.TrendDiff")}
}

func (t *TradingDetectorTrendDiff) DefaultDataInit(n *nodegraph.Node) {
	n.Inputs = []nodegraph.Input{
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(0),
		nodegraph.NewConstantInput(6),
	}
	n.Outputs = []nodegraph.Output{
		nodegraph.NewOutput(1),
		nodegraph.NewOutput(1),
		nodegraph.NewOutput(1),
	}
}

func (t *TradingDetectorTrendDiff) Process(numSamples, numCacheSamples int, inputs []nodegraph.Input, outputs []nodegraph.Output) {
	diff := inputs[0].Value() - inputs[1].Value()

	writeConstant(&outputs[0], numSamples, t.trend.process(diff))
	writeConstant(&outputs[1], numSamples, t.rev.process(diff))
	writeConstant(&outputs[2], numSamples, t.accel.process(diff))
	t.MarkSeen(inputs)
}
