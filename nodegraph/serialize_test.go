package nodegraph

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalThenLoadGraphRoundTrips(t *testing.T) {
	schema := newTestSchema()
	g := NewGraph(schema)
	g.Name = "demo"

	a := g.NewNode(typeAdd, 0)
	b := g.NewNode(typeSink, 0)
	require.True(t, g.SetInputValue(a, 0, []float32{2}, 1))
	require.True(t, g.SetInputValue(a, 1, []float32{3}, 1))
	require.True(t, g.SetInputLink(b, 0, a, 0))

	data, err := g.MarshalJSON()
	require.NoError(t, err)

	loaded, err := LoadGraph(data, schema)
	require.NoError(t, err)
	assert.Equal(t, "demo", loaded.Name)

	loadedB, ok := loaded.Node(b)
	require.True(t, ok)
	assert.Equal(t, InputLink, loadedB.Inputs[0].Kind)
}

func TestLoadGraphRejectsNewerMajorVersion(t *testing.T) {
	schema := newTestSchema()
	_, err := LoadGraph([]byte(`{"NodeGraphSchema":{"VersionMajor":99,"VersionMinor":0}}`), schema)
	assert.Error(t, err)
}

func TestLoadGraphDropsUnknownTypeIDAndItsWires(t *testing.T) {
	schema := newTestSchema()
	doc := `{
		"NodeGraphSchema": {
			"VersionMajor": 1, "VersionMinor": 0,
			"NodeGraphGroup": {
				"Nodes": [
					{"id": 1, "type_id": 12345, "inputs": []},
					{"id": 2, "type_id": ` + strconv.Itoa(int(typeSink)) + `, "inputs": [
						{"kind": "link", "link_source": 1, "link_channel": 0}
					]}
				]
			}
		}
	}`
	g, err := LoadGraph([]byte(doc), schema)
	require.NoError(t, err)

	_, ok := g.Node(1)
	assert.False(t, ok)

	n2, ok := g.Node(2)
	require.True(t, ok)
	// Dangling wire to the dropped node must leave the default in place,
	// not a Link to a missing node.
	assert.Equal(t, InputConstant, n2.Inputs[0].Kind)
}
