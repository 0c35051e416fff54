package pane

// DisplayCommand is one primitive paint operation. Solid rectangles are the
// only primitive: backgrounds are one rectangle, borders are up to four.
// Commands are immutable once built.
type DisplayCommand struct {
	Rect  Rect
	Color RGBA
}

// DisplayList is the flat, ordered sequence of paint commands derived from
// one layout tree. Order is painter's order: earlier commands are drawn
// first and later commands visually overwrite them. A DisplayList is owned
// by a single frame and rebuilt, never mutated, when the layout changes.
type DisplayList []DisplayCommand

// BuildDisplayList flattens a layout tree into a DisplayList.
//
// For each block box it emits, in order: a background fill sized to the
// border box (skipped when the background is fully transparent), then the
// left, right, top, and bottom border edges (each skipped when its width is
// zero or the border color is transparent), then the commands of the
// children, so descendants always paint on top of their ancestors.
//
// Every emitted rectangle is clipped to the viewport; rectangles entirely
// outside it are dropped. Zero-area boxes yield no commands. The function is
// pure: the same tree and viewport always produce an identical list.
//
// A nil root yields an empty list.
func BuildDisplayList(root *LayoutBox, viewport Rect) DisplayList {
	if root == nil {
		return nil
	}
	var list DisplayList
	list = appendBoxCommands(list, root, viewport)
	return list
}

func appendBoxCommands(list DisplayList, box *LayoutBox, viewport Rect) DisplayList {
	if box.Kind == BoxBlock {
		list = appendBackground(list, box, viewport)
		list = appendBorders(list, box, viewport)
	}
	for i := range box.Children {
		list = appendBoxCommands(list, &box.Children[i], viewport)
	}
	return list
}

func appendBackground(list DisplayList, box *LayoutBox, viewport Rect) DisplayList {
	if box.Style.Background.IsTransparent() {
		return list
	}
	return appendClipped(list, box.Dimensions.BorderBox(), box.Style.Background, viewport)
}

func appendBorders(list DisplayList, box *LayoutBox, viewport Rect) DisplayList {
	color := box.Style.BorderColor
	if color.IsTransparent() {
		return list
	}
	d := box.Dimensions
	bb := d.BorderBox()

	if d.Border.Left > 0 {
		list = appendClipped(list, Rect{
			X: bb.X, Y: bb.Y,
			Width: d.Border.Left, Height: bb.Height,
		}, color, viewport)
	}
	if d.Border.Right > 0 {
		list = appendClipped(list, Rect{
			X: bb.X + bb.Width - d.Border.Right, Y: bb.Y,
			Width: d.Border.Right, Height: bb.Height,
		}, color, viewport)
	}
	if d.Border.Top > 0 {
		list = appendClipped(list, Rect{
			X: bb.X, Y: bb.Y,
			Width: bb.Width, Height: d.Border.Top,
		}, color, viewport)
	}
	if d.Border.Bottom > 0 {
		list = appendClipped(list, Rect{
			X: bb.X, Y: bb.Y + bb.Height - d.Border.Bottom,
			Width: bb.Width, Height: d.Border.Bottom,
		}, color, viewport)
	}
	return list
}

// appendClipped clips r to the viewport and appends it unless nothing
// visible remains.
func appendClipped(list DisplayList, r Rect, c RGBA, viewport Rect) DisplayList {
	clipped := r.Intersect(viewport)
	if clipped.IsEmpty() {
		return list
	}
	return append(list, DisplayCommand{Rect: clipped, Color: c})
}
