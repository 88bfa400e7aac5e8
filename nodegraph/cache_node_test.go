package nodegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphCacheWriteReadCountersDecouple(t *testing.T) {
	cache := NewGraphCache(1)
	n := &Node{}
	cache.DefaultDataInit(n)

	n.Inputs[0].setConstant([]float32{9}, 1)

	const window = 4
	cache.Process(1, window, n.Inputs, n.Outputs)
	assert.Equal(t, float32(9), n.Outputs[0].Buffer()[0])

	cache.Process(1, window, n.Inputs, n.Outputs)
	assert.Equal(t, float32(9), n.Outputs[0].Buffer()[0])
}

func TestGraphCacheResetsOnInputChange(t *testing.T) {
	cache := NewGraphCache(1)
	n := &Node{}
	cache.DefaultDataInit(n)

	n.Inputs[0].setConstant([]float32{1}, 1)
	cache.Process(1, 4, n.Inputs, n.Outputs)
	cache.Process(1, 4, n.Inputs, n.Outputs)
	cache.Process(1, 4, n.Inputs, n.Outputs)
	cache.Process(1, 4, n.Inputs, n.Outputs)

	n.Inputs[0].setConstant([]float32{2}, 1)
	cache.Process(1, 4, n.Inputs, n.Outputs)
	assert.Equal(t, float32(2), n.Outputs[0].Buffer()[0])
}
