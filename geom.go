package pane

// Rect is an axis-aligned rectangle in pixel space. The origin is the
// top-left corner of the viewport and y grows downward, matching the
// coordinate system the layout stage produces.
type Rect struct {
	X, Y, Width, Height float32
}

// IsEmpty reports whether the rectangle encloses no area.
// Degenerate (zero or negative extent) rectangles are valid inputs
// throughout pane; they simply contribute no visible pixels.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Expanded returns the rectangle grown outward by the given edge sizes.
// This is how a content box becomes a padding box, a padding box a border
// box, and so on.
func (r Rect) Expanded(e EdgeSizes) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// Intersect returns the overlap of r and other. If the rectangles do not
// overlap, the result is empty (IsEmpty reports true) with zero extent.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// EdgeSizes holds per-edge thicknesses (padding, border, or margin widths).
type EdgeSizes struct {
	Left, Right, Top, Bottom float32
}

// Dimensions is the CSS box model for one layout box. Content is positioned
// relative to the document origin; padding, border, and margin surround it.
type Dimensions struct {
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// PaddingBox returns the area covered by the content plus padding.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.Expanded(d.Padding)
}

// BorderBox returns the area covered by the content, padding, and border.
// Backgrounds fill the border box.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().Expanded(d.Border)
}

// MarginBox returns the total area the box occupies, including margins.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().Expanded(d.Margin)
}
