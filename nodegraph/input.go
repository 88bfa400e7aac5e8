package nodegraph

// InputKind tags which variant an Input slot currently holds.
type InputKind int

const (
	// InputConstant holds a scalar or fixed-size float array owned inline.
	InputConstant InputKind = iota
	// InputText holds a fixed-capacity utf8 buffer.
	InputText
	// InputLink pulls from another node's output channel.
	InputLink
	// InputExternalPointer is a non-owning reference to externally owned floats.
	InputExternalPointer
	// InputArray holds a resizable float buffer.
	InputArray
)

// Bound clamps values read from an Input slot.
type Bound int

const (
	BoundUnbounded Bound = iota
	BoundZeroOne
	BoundSignedOne
	BoundZeroHundred
	BoundZeroTwo
	BoundCustom
)

// Range describes the concrete [min, max] a Bound resolves to.
type Range struct {
	Min, Max float32
}

func (b Bound) Range(custom Range) Range {
	switch b {
	case BoundZeroOne:
		return Range{0, 1}
	case BoundSignedOne:
		return Range{-1, 1}
	case BoundZeroHundred:
		return Range{0, 100}
	case BoundZeroTwo:
		return Range{0, 2}
	case BoundCustom:
		return custom
	default:
		return Range{}
	}
}

func clamp(v float32, r Range) float32 {
	if r.Min == 0 && r.Max == 0 {
		return v
	}
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// link is the target of an InputLink variant.
type link struct {
	source  NodeID
	channel uint8
}

// Input is the polymorphic slot type described in spec §3.1. Exactly one of
// the variant fields is meaningful at a time, selected by Kind.
type Input struct {
	Kind InputKind

	// InputConstant / InputArray
	values []float32

	// InputText
	text string

	// InputLink
	link      link
	linkValue []float32

	// InputExternalPointer
	external []float32

	bound       Bound
	customRange Range
	changeCount uint64

	// static metadata flags, set at schema registration time.
	Visible  bool
	Editable bool
}

// NewConstantInput creates a Constant slot holding a single scalar.
func NewConstantInput(value float32) Input {
	return Input{Kind: InputConstant, values: []float32{value}, Visible: true, Editable: true}
}

// NewConstantArrayInput creates a Constant slot holding a fixed-size array.
func NewConstantArrayInput(values []float32) Input {
	if len(values) == 0 {
		values = []float32{0}
	}
	cp := append([]float32(nil), values...)
	return Input{Kind: InputConstant, values: cp, Visible: true, Editable: true}
}

// NewTextInput creates a Text slot.
func NewTextInput(text string) Input {
	return Input{Kind: InputText, text: text, Visible: true, Editable: true}
}

// NewArrayInput creates a dynamic Array slot.
func NewArrayInput(capacity int) Input {
	if capacity < 1 {
		capacity = 1
	}
	return Input{Kind: InputArray, values: make([]float32, capacity), Visible: true, Editable: true}
}

// NewExternalPointerInput wraps a non-owning slice the caller guarantees
// outlives the graph.
func NewExternalPointerInput(ptr []float32) Input {
	return Input{Kind: InputExternalPointer, external: ptr}
}

// SetBound installs a read-time clamp on this slot.
func (in *Input) SetBound(b Bound, custom Range) {
	in.bound = b
	in.customRange = custom
}

// Changed reports whether this slot's value has been written since the
// last call to MarkSeen — the "input has changed" counter of spec §3.1.
func (in *Input) Changed(lastSeen uint64) bool {
	return in.changeCount != lastSeen
}

// Seen returns the current change counter, to be stored by the caller and
// compared against on a later Changed call.
func (in *Input) Seen() uint64 {
	return in.changeCount
}

func (in *Input) bumpChange() {
	in.changeCount++
}

// Value returns the slot's scalar view, applying its bound. For Link slots
// it returns the first frame the scheduler last resolved into the slot
// (zero before the link has been resolved by a pass).
func (in *Input) Value() float32 {
	r := in.bound.Range(in.customRange)
	switch in.Kind {
	case InputConstant, InputArray:
		if len(in.values) == 0 {
			return 0
		}
		return clamp(in.values[0], r)
	case InputExternalPointer:
		if len(in.external) == 0 {
			return 0
		}
		return clamp(in.external[0], r)
	case InputLink:
		if len(in.linkValue) == 0 {
			return 0
		}
		return clamp(in.linkValue[0], r)
	default:
		return 0
	}
}

// Values returns the slot's array view, applying its bound element-wise.
func (in *Input) Values() []float32 {
	var src []float32
	switch in.Kind {
	case InputConstant, InputArray:
		src = in.values
	case InputExternalPointer:
		src = in.external
	case InputLink:
		src = in.linkValue
	default:
		return nil
	}
	r := in.bound.Range(in.customRange)
	out := make([]float32, len(src))
	for i, v := range src {
		out[i] = clamp(v, r)
	}
	return out
}

// Text returns the slot's string view; empty for non-Text slots.
func (in *Input) Text() string {
	if in.Kind != InputText {
		return ""
	}
	return in.text
}

// SetValue overwrites a Constant slot's scalar in place, for operators
// that push an externally-driven state back onto their own input (e.g. a
// UI control syncing its slot after the caller changed it out of band).
// No-op on any other slot kind.
func (in *Input) SetValue(v float32) {
	if in.Kind != InputConstant {
		return
	}
	if len(in.values) == 0 {
		in.values = []float32{v}
	} else {
		in.values[0] = v
	}
	in.bumpChange()
}

// setConstant overwrites this slot in place with a Constant/Array value,
// preserving bound metadata. minSize enforces the capacity floor of
// set_input_value (spec §4.1.1).
func (in *Input) setConstant(values []float32, minSize int) {
	if minSize < 1 {
		minSize = 1
	}
	if len(values) < minSize {
		padded := make([]float32, minSize)
		copy(padded, values)
		values = padded
	}
	kind := InputConstant
	if len(values) > 1 {
		kind = InputArray
	}
	in.Kind = kind
	in.values = append([]float32(nil), values...)
	in.bumpChange()
}

func (in *Input) setText(text string) {
	in.Kind = InputText
	in.text = text
	in.bumpChange()
}

func (in *Input) setLink(source NodeID, channel uint8) {
	in.Kind = InputLink
	in.link = link{source: source, channel: channel}
	in.linkValue = nil
	in.bumpChange()
}

// resolveLink stores the frames pulled from a Link slot's source output
// this pass, so Value/Values can read it like any other slot (spec
// §4.1.2: the scheduler feeds each node its upstream's latest samples).
func (in *Input) resolveLink(frames []float32) {
	in.linkValue = frames
	in.bumpChange()
}

// detach reverts a Link slot to its last Constant default, per the broken
// wire failure semantics of spec §4.1.9. defaultValues is the operation's
// registered default for this channel.
func (in *Input) detach(defaultValues []float32) {
	in.Kind = InputConstant
	if len(defaultValues) == 0 {
		defaultValues = []float32{0}
	}
	in.values = append([]float32(nil), defaultValues...)
	in.bumpChange()
}
