package operators

import "github.com/signalgraph/engine/nodegraph"

// Type ids for the built-in catalogue. Stable across versions: schema
// files persist these, so existing graphs must keep resolving to the same
// operator after an upgrade (spec §4.1.7).
const (
	TypeAdd int32 = iota + 1
	TypeMultiply
	TypeGreaterThan
	TypeAnd
	TypeClamp
	TypeSineGenerator
	TypeLowPass
	TypeGain
	TypeSimpleMovingAverage
	TypeTradingIndicatorOBV
	TypeTradingIndicatorRSI
	TypeTradingDetectorTrend
	TypeTradingDetectorTrendDiff
	TypeTradingFilterFlipGate
	TypeTradingFilterPulseInfo
	TypeSaturator
	TypeEnvelopeFollower
	TypeDataBusIn
	TypeDataBusOut
	TypeUICheckbox
	TypeUISlider
	TypeGraphCache
	TypeGraphSource
	TypeGraphOutput
)

// RegisterAll installs the built-in operator catalogue into schema,
// grouped by the taxonomy of spec §4.1.6.
func RegisterAll(schema *nodegraph.Schema) {
	schema.RegisterNodeType("Math.Aritmethic", TypeAdd, "Add", func() nodegraph.Operation { return NewAdd() })
	schema.RegisterNodeType("Math.Aritmethic", TypeMultiply, "Multiply", func() nodegraph.Operation { return NewMultiply() })
	schema.RegisterNodeType("Math.Logic", TypeGreaterThan, "Greater Than", func() nodegraph.Operation { return NewGreaterThan() })
	schema.RegisterNodeType("Math.Logic", TypeAnd, "And", func() nodegraph.Operation { return NewAnd() })
	schema.RegisterNodeType("Math.Numerical", TypeClamp, "Clamp", func() nodegraph.Operation { return NewClamp() })
	schema.RegisterNodeType("Signal.Generator", TypeSineGenerator, "Sine", func() nodegraph.Operation { return NewSineGenerator() })
	schema.RegisterNodeType("Signal.Filter", TypeLowPass, "Low Pass", func() nodegraph.Operation { return NewLowPass() })
	schema.RegisterNodeType("Signal.Control", TypeGain, "Gain", func() nodegraph.Operation { return NewGain() })
	schema.RegisterNodeType("Trading.Indicator", TypeSimpleMovingAverage, "SMA", func() nodegraph.Operation { return NewSimpleMovingAverage(14) })
	schema.RegisterNodeType("Trading.Indicator", TypeTradingIndicatorOBV, "OBV", func() nodegraph.Operation { return NewTradingIndicatorOBV() })
	schema.RegisterNodeType("Trading.Indicator", TypeTradingIndicatorRSI, "RSI", func() nodegraph.Operation { return NewTradingIndicatorRSI() })
	schema.RegisterNodeType("Trading.Detector", TypeTradingDetectorTrend, "Trend Detector", func() nodegraph.Operation { return NewTradingDetectorTrend() })
	schema.RegisterNodeType("Trading.Detector", TypeTradingDetectorTrendDiff, "Trend Difference Detector", func() nodegraph.Operation { return NewTradingDetectorTrendDiff() })
	schema.RegisterNodeType("Trading.Filter", TypeTradingFilterFlipGate, "Flip Gate", func() nodegraph.Operation { return NewTradingFilterFlipGate() })
	schema.RegisterNodeType("Trading.Filter", TypeTradingFilterPulseInfo, "Flip Info", func() nodegraph.Operation { return NewTradingFilterPulseInfo() })
	schema.RegisterNodeType("Signal.Effect", TypeSaturator, "Saturator", func() nodegraph.Operation { return NewSaturator() })
	schema.RegisterNodeType("Signal.Effect", TypeEnvelopeFollower, "Envelope Follower", func() nodegraph.Operation { return NewEnvelopeFollower() })
	schema.RegisterNodeType("Data IO", TypeDataBusIn, "Bus Data In", func() nodegraph.Operation { return NewDataBusIn(6) })
	schema.RegisterNodeType("Data IO", TypeDataBusOut, "Bus Data Out", func() nodegraph.Operation { return NewDataBusOut(6) })
	schema.RegisterNodeType("UI", TypeUICheckbox, "UI Checkbox", func() nodegraph.Operation { return NewUICheckbox() })
	schema.RegisterNodeType("UI", TypeUISlider, "UI Slider", func() nodegraph.Operation { return NewUISlider(0, 1, 1) })
	schema.RegisterNodeType("Node Graph.Cache", TypeGraphCache, "Cache", func() nodegraph.Operation { return nodegraph.NewGraphCache(1) })
	schema.RegisterNodeType("Node Graph.Source", TypeGraphSource, "Source", func() nodegraph.Operation { return NewGraphSource() })
	schema.RegisterNodeType("Node Graph.Output", TypeGraphOutput, "Output", func() nodegraph.Operation { return NewGraphOutput() })
}
