package nodegraph

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/signalgraph/engine/internal/telemetry"
	"github.com/signalgraph/engine/log"
	"github.com/signalgraph/engine/telemetry/trace"
)

// Graph owns a set of Nodes exclusively (no shared ownership, spec §5) and
// drives the pull-based depth-first scheduling algorithm of §4.1.2.
type Graph struct {
	Name     string
	TypeName string
	FileName string
	FullPath string
	StringID uint32

	schema *Schema
	nodes  map[NodeID]*Node
	order  []NodeID // insertion order, used for deterministic sink and tick iteration
	nextID NodeID
}

// NewGraph creates an empty graph bound to a schema registry.
func NewGraph(schema *Schema) *Graph {
	return &Graph{
		schema: schema,
		nodes:  make(map[NodeID]*Node),
	}
}

// Schema returns the graph's type registry.
func (g *Graph) Schema() *Schema { return g.schema }

// Node returns the node with the given id, if present.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NewNode creates a node of the given schema type and installs its
// defaults. Returns invalidNodeID (-1) on an unknown type id (spec
// §4.1.1). id=0 requests auto-assignment.
func (g *Graph) NewNode(typeID int32, id NodeID) NodeID {
	op := g.schema.New(typeID)
	if op == nil {
		log.Warnf("nodegraph: unknown type id %d", typeID)
		return invalidNodeID
	}
	if id == 0 || g.nodes[id] != nil {
		id = g.allocID()
	}
	name, _ := g.schema.TypeName(typeID)
	n := &Node{
		ID:       id,
		TypeID:   typeID,
		StringID: uuid.NewString(),
	}
	_ = name
	op.DefaultDataInit(n)
	n.Operation = op
	g.nodes[id] = n
	g.order = append(g.order, id)
	if id >= g.nextID {
		g.nextID = id + 1
	}
	return id
}

func (g *Graph) allocID() NodeID {
	for {
		id := g.nextID
		g.nextID++
		if g.nodes[id] == nil {
			return id
		}
	}
}

// RemoveNode detaches all inbound links pointing at id, then destroys the
// node. Returns false if the node doesn't exist.
func (g *Graph) RemoveNode(id NodeID) bool {
	if _, ok := g.nodes[id]; !ok {
		return false
	}
	g.DetachInput(id)
	delete(g.nodes, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return true
}

// DetachInput removes any Link input across the whole graph that points at
// src, reverting each to its operation's registered default (spec §4.1.9).
func (g *Graph) DetachInput(src NodeID) {
	for _, n := range g.nodes {
		base, hasDefaults := n.Operation.(interface{ InputDefault(int) []float32 })
		for ch := range n.Inputs {
			in := &n.Inputs[ch]
			if in.Kind == InputLink && in.link.source == src {
				var def []float32
				if hasDefaults {
					def = base.InputDefault(ch)
				}
				in.detach(def)
			}
		}
	}
}

// reachable reports whether `to` can be reached from `from` by following
// existing Link edges (from depends on its Link sources transitively).
func (g *Graph) reachable(from, to NodeID) bool {
	visited := make(map[NodeID]bool)
	var walk func(cur NodeID) bool
	walk = func(cur NodeID) bool {
		if visited[cur] {
			return false
		}
		visited[cur] = true
		n, ok := g.nodes[cur]
		if !ok {
			return false
		}
		for _, in := range n.Inputs {
			if in.Kind != InputLink {
				continue
			}
			if in.link.source == to {
				return true
			}
			if walk(in.link.source) {
				return true
			}
		}
		return false
	}
	return walk(from)
}

// SetInputLink rewires an input slot to pull from another node's output
// channel. Refuses (false, no mutation) if either node/channel is invalid
// or the wire would introduce a cycle (spec §4.1.1).
func (g *Graph) SetInputLink(id NodeID, channel int, src NodeID, srcChannel uint8) bool {
	n, ok := g.nodes[id]
	if !ok || channel < 0 || channel >= len(n.Inputs) {
		return false
	}
	srcNode, ok := g.nodes[src]
	if !ok || int(srcChannel) >= len(srcNode.Outputs) {
		return false
	}
	if id == src {
		return false
	}
	// Would this wire close a cycle? src must not already depend on id.
	if g.reachable(src, id) {
		return false
	}
	n.Inputs[channel].setLink(src, srcChannel)
	return true
}

// SetInputValue replaces an input slot with a Constant or Array value.
// minSize enforces the capacity floor; values longer than 1 become Array.
func (g *Graph) SetInputValue(id NodeID, channel int, values []float32, minSize int) bool {
	n, ok := g.nodes[id]
	if !ok || channel < 0 || channel >= len(n.Inputs) {
		return false
	}
	n.Inputs[channel].setConstant(values, minSize)
	return true
}

// SetInputText replaces an input slot with a Text value. Fails if the slot
// isn't already a Text-kind slot (wrong slot kind, spec §4.1.1).
func (g *Graph) SetInputText(id NodeID, channel int, text string) bool {
	n, ok := g.nodes[id]
	if !ok || channel < 0 || channel >= len(n.Inputs) {
		return false
	}
	if n.Inputs[channel].Kind != InputText {
		return false
	}
	n.Inputs[channel].setText(text)
	return true
}

// SetInputBound installs a read-time clamp on an input slot.
func (g *Graph) SetInputBound(id NodeID, channel int, bound Bound, custom Range) bool {
	n, ok := g.nodes[id]
	if !ok || channel < 0 || channel >= len(n.Inputs) {
		return false
	}
	n.Inputs[channel].SetBound(bound, custom)
	return true
}

// Tick visits every node with last_tick < tickCount exactly once, in
// insertion order, calling operation.Tick. Monotonic per node: a node whose
// last_tick is already >= tickCount is skipped (spec §4.1.3).
func (g *Graph) Tick(tickCount uint64, deltaSecs float64) {
	for _, id := range g.order {
		n := g.nodes[id]
		if n == nil || tickCount <= n.lastTick {
			continue
		}
		n.lastTick = tickCount
		if n.Operation != nil {
			n.Operation.Tick(tickCount, deltaSecs)
		}
	}
}

// ProcessSubgraph drives every sink node (OutputExternalOutput,
// OutputExternalVisualOutput, or explicitly tagged) in deterministic
// insertion order, per the scheduling algorithm of spec §4.1.2.
func (g *Graph) ProcessSubgraph(ctx context.Context, numSamples, numCacheSamples int) error {
	for _, n := range g.nodes {
		n.processFlag = false
	}
	sawSink := false
	for _, id := range g.order {
		n := g.nodes[id]
		if n == nil || !n.isRoot() {
			continue
		}
		sawSink = true
		if err := g.processNode(ctx, id, numSamples, numCacheSamples); err != nil {
			return err
		}
	}
	if !sawSink {
		return ErrNoEntryPoint
	}
	return nil
}

// processNode implements one recursive step of the DFS pull: cut if the
// process flag is already set, else recurse into Link inputs in ascending
// channel order, then invoke the operation (spec §4.1.2).
func (g *Graph) processNode(ctx context.Context, id NodeID, numSamples, numCacheSamples int) error {
	n, ok := g.nodes[id]
	if !ok {
		// Defensive: a Link referred to a node removed mid-pass.
		return nil
	}
	if n.processFlag {
		return nil
	}
	n.processFlag = true

	_, span := trace.Tracer.Start(ctx, telemetry.NewPassSpanName(n.Operation.Name()))
	defer span.End()

	for ch := range n.Inputs {
		in := &n.Inputs[ch]
		if in.Kind != InputLink {
			continue
		}
		if err := g.processNode(ctx, in.link.source, numSamples, numCacheSamples); err != nil {
			return err
		}
		if src, ok := g.nodes[in.link.source]; ok && int(in.link.channel) < len(src.Outputs) {
			out := &src.Outputs[in.link.channel]
			out.Grow(numSamples)
			out.MarkPolled()
			in.resolveLink(out.Frames(numSamples))
		}
	}
	for i := range n.Outputs {
		n.Outputs[i].Grow(numSamples)
	}
	if n.Operation != nil {
		n.Operation.Process(numSamples, numCacheSamples, n.Inputs, n.Outputs)
	}
	for i := range n.Outputs {
		n.Outputs[i].MarkWritten(numSamples)
	}
	return nil
}

// Validate walks the whole graph looking for dangling Link targets or
// cycles that shouldn't be reachable through the wire-time guards, for
// callers loading an untrusted serialized graph before first use.
func (g *Graph) Validate() error {
	for id, n := range g.nodes {
		for ch, in := range n.Inputs {
			if in.Kind != InputLink {
				continue
			}
			src, ok := g.nodes[in.link.source]
			if !ok {
				return fmt.Errorf("%w: node %d input %d links to missing node %d", ErrNodeNotFound, id, ch, in.link.source)
			}
			if int(in.link.channel) >= len(src.Outputs) {
				return fmt.Errorf("%w: node %d input %d links to invalid channel %d", ErrInvalidChannel, id, ch, in.link.channel)
			}
		}
	}
	for id := range g.nodes {
		if g.reachable(id, id) {
			return fmt.Errorf("%w: node %d", ErrWireIntroducesCycle, id)
		}
	}
	return nil
}
