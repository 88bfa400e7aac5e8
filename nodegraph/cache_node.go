package nodegraph

// GraphCache decouples a slow producer (e.g. a historical fetch staged
// through blockcache) from a fast, fixed-size consumer such as an audio
// block, per spec §4.1.4. It exposes `channels` input/output pairs.
type GraphCache struct {
	BaseOperation

	channels int

	buffer         []float32
	readSamples    int
	writtenSamples int
	numCacheSamples int
}

// NewGraphCache constructs a GraphCache operator with the given channel
// count (one input/output pair per channel).
func NewGraphCache(channels int) *GraphCache {
	if channels < 1 {
		channels = 1
	}
	return &GraphCache{
		BaseOperation: NewBaseOperation("Cache", "NodeGraph.Cache.GraphCache"),
		channels:      channels,
	}
}

func (c *GraphCache) DefaultDataInit(n *Node) {
	n.Inputs = make([]Input, c.channels)
	n.Outputs = make([]Output, c.channels)
	for i := 0; i < c.channels; i++ {
		n.Inputs[i] = NewConstantInput(0)
		n.Outputs[i] = NewOutput(1)
	}
}

func (c *GraphCache) Reset() {
	c.buffer = nil
	c.readSamples = 0
	c.writtenSamples = 0
}

func (c *GraphCache) resize(numCacheSamples int) {
	need := numCacheSamples * c.channels
	if len(c.buffer) < need {
		grown := make([]float32, need)
		copy(grown, c.buffer)
		c.buffer = grown
	}
	c.numCacheSamples = numCacheSamples
}

// Process implements the decoupled read/write pass described in spec
// §4.1.4: writing and reading advance on independent counters. The read
// counter wraps to 0 once it reaches numCacheSamples; the write counter
// stops there until an input change resets both counters.
func (c *GraphCache) Process(numSamples, numCacheSamples int, inputs []Input, outputs []Output) {
	if numCacheSamples < 1 {
		numCacheSamples = 1
	}
	c.resize(numCacheSamples)

	if c.InputHasChanged(inputs) {
		c.writtenSamples = 0
		c.readSamples = 0
		c.MarkSeen(inputs) // latch immediately: refill spans many Process calls
	}

	if c.writtenSamples < numCacheSamples {
		frame := numSamples
		if frame < 1 {
			frame = 1
		}
		for f := 0; f < frame && c.writtenSamples < numCacheSamples; f++ {
			base := c.writtenSamples * c.channels
			for ch := 0; ch < c.channels && base+ch < len(c.buffer); ch++ {
				c.buffer[base+ch] = inputs[ch].Value()
			}
			c.writtenSamples++
		}
	}

	if c.readSamples < numCacheSamples {
		frame := numSamples
		if frame < 1 {
			frame = 1
		}
		for f := 0; f < frame && c.readSamples < numCacheSamples; f++ {
			base := c.readSamples * c.channels
			for ch := 0; ch < c.channels; ch++ {
				var v float32
				if base+ch < len(c.buffer) {
					v = c.buffer[base+ch]
				}
				outputs[ch].Grow(1)
				buf := outputs[ch].Buffer()
				if len(buf) > 0 {
					buf[0] = v
				}
			}
			c.readSamples++
		}
		if c.readSamples >= numCacheSamples {
			c.readSamples = 0
		}
	}
}
