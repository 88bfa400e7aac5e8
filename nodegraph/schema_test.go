package nodegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterNodeTypeBuildsPickerTree(t *testing.T) {
	schema := NewSchema()
	schema.RegisterNodeType("Math.Aritmethic", 1, "Add", func() Operation { return newAddOp() })
	schema.RegisterNodeType("Math.Aritmethic", 2, "Multiply", func() Operation { return newAddOp() })

	root := schema.Picker()
	require.Len(t, root.Children, 1)
	mathNode := root.Children[0]
	assert.Equal(t, "Math", mathNode.PathPart)
	require.Len(t, mathNode.Children, 1)
	aritNode := mathNode.Children[0]
	assert.Equal(t, "Aritmethic", aritNode.PathPart)
	assert.Len(t, aritNode.Children, 2)
}

func TestRegisterNodeTypeIsIdempotentForIdenticalEntry(t *testing.T) {
	schema := NewSchema()
	schema.RegisterNodeType("Math", 1, "Add", func() Operation { return newAddOp() })
	schema.RegisterNodeType("Math", 1, "Add", func() Operation { return newAddOp() })

	root := schema.Picker()
	require.Len(t, root.Children, 1)
	assert.Len(t, root.Children[0].Children, 1)
}

func TestSchemaNewReturnsNilForUnknownType(t *testing.T) {
	schema := NewSchema()
	assert.Nil(t, schema.New(42))
}

func TestSchemaTypeName(t *testing.T) {
	schema := NewSchema()
	schema.RegisterNodeType("Math", 1, "Add", func() Operation { return newAddOp() })
	name, ok := schema.TypeName(1)
	assert.True(t, ok)
	assert.Equal(t, "Add", name)
}
