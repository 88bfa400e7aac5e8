package nodegraph

// Output owns a resizable float buffer, per spec §3.1. Buffers never shrink
// below 1 element and grow to fit the largest consumer window requested.
type Output struct {
	buffer        []float32
	channels      int
	latestWritten int
	polled        bool
}

// NewOutput creates an output slot with a minimum-capacity buffer.
func NewOutput(channels int) Output {
	if channels < 1 {
		channels = 1
	}
	return Output{buffer: make([]float32, channels), channels: channels}
}

// Grow ensures the buffer can hold at least numSamples frames of this
// output's channel width, per the "framework grows it" invariant of §3.1.
func (o *Output) Grow(numSamples int) {
	need := numSamples * o.channels
	if need < o.channels {
		need = o.channels
	}
	if len(o.buffer) >= need {
		return
	}
	grown := make([]float32, need)
	copy(grown, o.buffer)
	o.buffer = grown
}

// Buffer returns the raw backing slice for direct writes by an Operation.
func (o *Output) Buffer() []float32 { return o.buffer }

// Frames returns the first numSamples frames as a view, after Grow has
// been called by the scheduler.
func (o *Output) Frames(numSamples int) []float32 {
	n := numSamples * o.channels
	if n > len(o.buffer) {
		n = len(o.buffer)
	}
	return o.buffer[:n]
}

// MarkWritten records how many frames the operation produced this pass.
func (o *Output) MarkWritten(numSamples int) {
	o.latestWritten = numSamples
	o.polled = false
}

// LatestWritten returns the number of frames written on the most recent pass.
func (o *Output) LatestWritten() int { return o.latestWritten }

// MarkPolled records that some consumer read from this output since the
// last write.
func (o *Output) MarkPolled() { o.polled = true }

// Polled reports whether a consumer has read this output since last write.
func (o *Output) Polled() bool { return o.polled }
