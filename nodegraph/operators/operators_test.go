package operators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalgraph/engine/nodegraph"
)

func TestAddSumsInputs(t *testing.T) {
	op := NewAdd()
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)
	n.Inputs[0] = nodegraph.NewConstantInput(2)
	n.Inputs[1] = nodegraph.NewConstantInput(3)

	op.Process(1, 0, n.Inputs, n.Outputs)
	assert.Equal(t, float32(5), n.Outputs[0].Buffer()[0])
}

func TestMultiplyDefaultsToIdentity(t *testing.T) {
	op := NewMultiply()
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)

	op.Process(1, 0, n.Inputs, n.Outputs)
	assert.Equal(t, float32(1), n.Outputs[0].Buffer()[0])
}

func TestSineGeneratorProducesBoundedSamples(t *testing.T) {
	op := NewSineGenerator()
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)

	op.Process(100, 0, n.Inputs, n.Outputs)
	for _, v := range n.Outputs[0].Buffer() {
		assert.LessOrEqual(t, math.Abs(float64(v)), 1.0)
	}
}

func TestSineGeneratorResetClearsPhase(t *testing.T) {
	op := NewSineGenerator()
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)
	op.Process(10, 0, n.Inputs, n.Outputs)

	op.Reset()
	op2 := NewSineGenerator()
	n2 := &nodegraph.Node{}
	op2.DefaultDataInit(n2)

	op.Process(1, 0, n.Inputs, n.Outputs)
	op2.Process(1, 0, n2.Inputs, n2.Outputs)
	assert.Equal(t, n2.Outputs[0].Buffer()[0], n.Outputs[0].Buffer()[0])
}

func TestLowPassSmoothsStepInput(t *testing.T) {
	op := NewLowPass()
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)
	n.Inputs[0] = nodegraph.NewConstantInput(1)

	op.Process(1, 0, n.Inputs, n.Outputs)
	first := n.Outputs[0].Buffer()[0]
	assert.Greater(t, first, float32(0))
	assert.Less(t, first, float32(1))
}

func TestClampBoundsOutput(t *testing.T) {
	op := NewClamp()
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)
	// Default min/max inputs are 0/1; an out-of-range value clamps to them.
	n.Inputs[0] = nodegraph.NewConstantInput(500)

	op.Process(1, 0, n.Inputs, n.Outputs)
	assert.Equal(t, float32(1), n.Outputs[0].Buffer()[0])
}

func TestSimpleMovingAverageAveragesWindow(t *testing.T) {
	op := NewSimpleMovingAverage(2)
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)

	n.Inputs[0] = nodegraph.NewConstantInput(10)
	op.Process(1, 0, n.Inputs, n.Outputs)
	n.Inputs[0] = nodegraph.NewConstantInput(20)
	op.Process(1, 0, n.Inputs, n.Outputs)

	assert.Equal(t, float32(15), n.Outputs[0].Buffer()[0])
}

func TestTradingIndicatorOBVAndRSIArePassthrough(t *testing.T) {
	obv := NewTradingIndicatorOBV()
	n := &nodegraph.Node{}
	obv.DefaultDataInit(n)
	n.Inputs[0] = nodegraph.NewConstantInput(7)
	obv.Process(1, 0, n.Inputs, n.Outputs)
	assert.Equal(t, float32(7), n.Outputs[0].Buffer()[0])

	rsi := NewTradingIndicatorRSI()
	n2 := &nodegraph.Node{}
	rsi.DefaultDataInit(n2)
	n2.Inputs[0] = nodegraph.NewConstantInput(7)
	rsi.Process(1, 0, n2.Inputs, n2.Outputs)
	assert.Equal(t, float32(7), n2.Outputs[0].Buffer()[0])
}

func TestTradingDetectorTrendScoresBullishRun(t *testing.T) {
	op := NewTradingDetectorTrend()
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)

	var basic float32
	for _, v := range []float32{1, 2, 3, 4} {
		n.Inputs[0] = nodegraph.NewConstantInput(v)
		op.Process(1, 0, n.Inputs, n.Outputs)
		basic = n.Outputs[0].Buffer()[0]
	}
	// 0.3 + 0.35 + 0.45 summed in float32 lands one ulp below float32(1.1).
	assert.InDelta(t, 1.1, basic, 1e-6)
}

func TestTradingFilterFlipGateTriggersAfterHoldDelay(t *testing.T) {
	op := NewTradingFilterFlipGate()
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)
	n.Inputs[1] = nodegraph.NewConstantInput(1)
	n.Inputs[2] = nodegraph.NewConstantInput(0)

	n.Inputs[0] = nodegraph.NewConstantInput(1)
	op.Process(1, 0, n.Inputs, n.Outputs)
	assert.Equal(t, float32(-1), n.Outputs[0].Buffer()[0])
	op.Process(1, 0, n.Inputs, n.Outputs)
	assert.Equal(t, float32(1), n.Outputs[0].Buffer()[0])
	assert.Equal(t, float32(1), n.Outputs[1].Buffer()[0])
}

func TestTradingFilterPulseInfoTracksRunLengths(t *testing.T) {
	op := NewTradingFilterPulseInfo()
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)

	for _, v := range []float32{1, 1, 1, -1, -1} {
		n.Inputs[0] = nodegraph.NewConstantInput(v)
		op.Process(1, 0, n.Inputs, n.Outputs)
	}
	assert.Equal(t, float32(3), n.Outputs[2].Buffer()[0])
	assert.Equal(t, float32(2), n.Outputs[3].Buffer()[0])
}

func TestSaturatorPassesQuietSignalUnclipped(t *testing.T) {
	op := NewSaturator()
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)
	n.Inputs[0] = nodegraph.NewConstantInput(0.01)
	n.Inputs[1] = nodegraph.NewConstantInput(0.01)

	op.Process(1, 0, n.Inputs, n.Outputs)
	// Below the limit the signal stays linear: wet = 1.4*0.5 = 0.7,
	// dry = 1.4*(1-0.7) = 0.42, so 0.42*0.01 + 0.7*(0.01*1.5) = 0.0147.
	assert.InDelta(t, 0.0147, n.Outputs[0].Buffer()[0], 1e-4)
}

func TestEnvelopeFollowerTracksPeak(t *testing.T) {
	op := NewEnvelopeFollower()
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)
	n.Inputs[0] = nodegraph.NewConstantInput(1)
	n.Inputs[1] = nodegraph.NewConstantInput(0)

	op.Process(1, 0, n.Inputs, n.Outputs)
	assert.Greater(t, n.Outputs[0].Buffer()[0], float32(0))
}

func TestDataBusRoundTripsThroughInterleavedFrames(t *testing.T) {
	out := NewDataBusOut(2)
	outNode := &nodegraph.Node{}
	out.DefaultDataInit(outNode)
	outNode.Inputs[0] = nodegraph.NewConstantInput(3)
	outNode.Inputs[1] = nodegraph.NewConstantInput(4)
	out.Process(1, 0, outNode.Inputs, outNode.Outputs)

	in := NewDataBusIn(2)
	inNode := &nodegraph.Node{}
	in.DefaultDataInit(inNode)
	inNode.Inputs[0] = nodegraph.NewConstantArrayInput(outNode.Outputs[0].Buffer())
	in.Process(1, 0, inNode.Inputs, inNode.Outputs)

	assert.Equal(t, float32(3), inNode.Outputs[0].Buffer()[0])
	assert.Equal(t, float32(4), inNode.Outputs[1].Buffer()[0])
}

func TestUICheckboxPushesExternalState(t *testing.T) {
	op := NewUICheckbox()
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)

	op.ExternallyChanged(true)
	op.Process(1, 0, n.Inputs, n.Outputs)
	assert.Equal(t, float32(1), n.Outputs[0].Buffer()[0])
	assert.True(t, op.State())
}

func TestUISliderAppliesPowerCurve(t *testing.T) {
	op := NewUISlider(0, 1, 2)
	n := &nodegraph.Node{}
	op.DefaultDataInit(n)
	n.Inputs[0] = nodegraph.NewConstantInput(0.5)
	n.Inputs[1] = nodegraph.NewConstantInput(2)
	n.Inputs[2] = nodegraph.NewConstantInput(1)

	op.Process(1, 0, n.Inputs, n.Outputs)
	assert.InDelta(t, 0.25, n.Outputs[0].Buffer()[0], 1e-6)
}

func TestRegisterAllWiresEveryType(t *testing.T) {
	schema := nodegraph.NewSchema()
	RegisterAll(schema)

	require.NotNil(t, schema.New(TypeAdd))
	require.NotNil(t, schema.New(TypeGraphOutput))
	for typeID := TypeAdd; typeID <= TypeGraphOutput; typeID++ {
		require.NotNil(t, schema.New(typeID), "type id %d", typeID)
	}
	assert.Nil(t, schema.New(9999))
}
