package pane

// BoxKind classifies a layout box. Only block boxes paint backgrounds and
// borders; inline and anonymous boxes exist in the tree for structure but
// contribute no paint commands of their own.
type BoxKind uint8

const (
	// BoxBlock is a block-level box with resolved dimensions and style.
	BoxBlock BoxKind = iota
	// BoxInline is an inline-level box. Inline layout is out of scope, so
	// inline boxes are structural placeholders.
	BoxInline
	// BoxAnonymous is an anonymous block wrapping inline content.
	BoxAnonymous
)

func (k BoxKind) String() string {
	switch k {
	case BoxBlock:
		return "block"
	case BoxInline:
		return "inline"
	case BoxAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// Style is the subset of resolved CSS properties the presenter paints.
// A fully transparent color means the property is not painted at all.
type Style struct {
	Background  RGBA
	BorderColor RGBA
}

// LayoutBox is one node of the layout tree handed over by the external
// layout stage. Rectangles are in absolute pixel coordinates. The tree is a
// read-only snapshot for the duration of one frame: pane never mutates it,
// and the layout stage must not mutate it while a frame is in flight.
type LayoutBox struct {
	Kind       BoxKind
	Dimensions Dimensions
	Style      Style
	Children   []LayoutBox
}
