package nodegraph

import (
	"encoding/json"
	"fmt"

	"github.com/signalgraph/engine/log"
)

// VersionMajor/VersionMinor are the schema version MarshalJSON writes.
// LoadGraph rejects a file with a newer major version, loads an older
// non-zero major version with a warning, and does not check the minor
// version (spec §4.1.7).
const (
	VersionMajor = 1
	VersionMinor = 0
)

// wireInputSlot is the on-wire shape of one Input slot.
type wireInputSlot struct {
	Kind       string    `json:"kind"`
	Values     []float32 `json:"values,omitempty"`
	Text       string    `json:"text,omitempty"`
	LinkSource int32     `json:"link_source,omitempty"`
	LinkChan   uint8     `json:"link_channel,omitempty"`
}

type wireNode struct {
	ID     int32           `json:"id"`
	TypeID int32           `json:"type_id"`
	Inputs []wireInputSlot `json:"inputs"`
}

type wireGroup struct {
	Nodes []wireNode `json:"Nodes"`
	Wires []struct{} `json:"Wires"`
}

type wireSchema struct {
	VersionMajor   int       `json:"VersionMajor"`
	VersionMinor   int       `json:"VersionMinor"`
	Name           string    `json:"Name"`
	TypeName       string    `json:"TypeName"`
	FileName       string    `json:"FileName"`
	FullPath       string    `json:"FullPath"`
	StringID       uint32    `json:"StringId"`
	NodeGraphGroup wireGroup `json:"NodeGraphGroup"`
}

type wireDocument struct {
	NodeGraphSchema wireSchema `json:"NodeGraphSchema"`
}

func inputKindName(k InputKind) string {
	switch k {
	case InputConstant:
		return "constant"
	case InputText:
		return "text"
	case InputLink:
		return "link"
	case InputExternalPointer:
		return "external"
	case InputArray:
		return "array"
	default:
		return "constant"
	}
}

func inputKindFromName(s string) InputKind {
	switch s {
	case "text":
		return InputText
	case "link":
		return InputLink
	case "external":
		return InputExternalPointer
	case "array":
		return InputArray
	default:
		return InputConstant
	}
}

// MarshalJSON serializes the graph to the stable shape of spec §4.1.7/§6.1.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := wireDocument{
		NodeGraphSchema: wireSchema{
			VersionMajor: VersionMajor,
			VersionMinor: VersionMinor,
			Name:         g.Name,
			TypeName:     g.TypeName,
			FileName:     g.FileName,
			FullPath:     g.FullPath,
			StringID:     g.StringID,
		},
	}
	for _, id := range g.order {
		n := g.nodes[id]
		if n == nil {
			continue
		}
		wn := wireNode{ID: int32(n.ID), TypeID: n.TypeID}
		for _, in := range n.Inputs {
			wi := wireInputSlot{Kind: inputKindName(in.Kind)}
			switch in.Kind {
			case InputConstant, InputArray:
				wi.Values = in.values
			case InputText:
				wi.Text = in.text
			case InputLink:
				wi.LinkSource = int32(in.link.source)
				wi.LinkChan = in.link.channel
			}
			wn.Inputs = append(wn.Inputs, wi)
		}
		doc.NodeGraphSchema.NodeGraphGroup.Nodes = append(doc.NodeGraphSchema.NodeGraphGroup.Nodes, wn)
	}
	return json.Marshal(doc)
}

// LoadGraph deserializes a graph document against the given schema. Missing
// keys are tolerated as "version 0" (spec §4.1.7); an unknown type id drops
// the node and its inbound wires, logging a warning, and loading continues
// (spec §4.1.9). The graph still loads even if some nodes are dropped.
func LoadGraph(data []byte, schema *Schema) (*Graph, error) {
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("nodegraph: decode: %w", err)
	}
	s := doc.NodeGraphSchema
	if s.VersionMajor > VersionMajor {
		return nil, fmt.Errorf("nodegraph: file version %d.%d exceeds loader version %d.%d",
			s.VersionMajor, s.VersionMinor, VersionMajor, VersionMinor)
	}
	if s.VersionMajor < VersionMajor && s.VersionMajor != 0 {
		log.Warnf("nodegraph: loading older schema version %d.%d (current %d.%d)",
			s.VersionMajor, s.VersionMinor, VersionMajor, VersionMinor)
	}

	g := NewGraph(schema)
	g.Name = s.Name
	g.TypeName = s.TypeName
	g.FileName = s.FileName
	g.FullPath = s.FullPath
	g.StringID = s.StringID

	dropped := make(map[int32]bool)
	for _, wn := range s.NodeGraphGroup.Nodes {
		id := g.NewNode(wn.TypeID, NodeID(wn.ID))
		if id == invalidNodeID {
			log.Warnf("nodegraph: dropping node %d: unknown type id %d", wn.ID, wn.TypeID)
			dropped[wn.ID] = true
		}
	}
	for _, wn := range s.NodeGraphGroup.Nodes {
		if dropped[wn.ID] {
			continue
		}
		n, ok := g.nodes[NodeID(wn.ID)]
		if !ok {
			continue
		}
		for ch, wi := range wn.Inputs {
			if ch >= len(n.Inputs) {
				break
			}
			switch inputKindFromName(wi.Kind) {
			case InputLink:
				if dropped[wi.LinkSource] {
					// Dangling wire to a dropped node: leave the
					// operation's default in place.
					continue
				}
				g.SetInputLink(n.ID, ch, NodeID(wi.LinkSource), wi.LinkChan)
			case InputText:
				n.Inputs[ch].setText(wi.Text)
			default:
				if len(wi.Values) > 0 {
					n.Inputs[ch].setConstant(wi.Values, len(wi.Values))
				}
			}
		}
	}
	return g, nil
}
