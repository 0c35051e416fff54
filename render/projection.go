package render

// Projection builds the 4x4 matrix mapping pixel-space coordinates (origin
// top-left, y down) to normalized device coordinates. (0,0) maps to (-1,+1)
// and (width,height) to (+1,-1); z passes through untouched.
//
// The matrix is column-major, the layout WGSL expects for a mat4x4<f32>
// uniform. It is recomputed only when the viewport size changes.
func Projection(width, height float32) [16]float32 {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return [16]float32{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

// Project applies a column-major 4x4 matrix to a pixel-space point and
// returns the transformed x and y. Exposed for tests of the round-trip
// property; the real transform runs in the vertex shader.
func Project(m [16]float32, x, y float32) (float32, float32) {
	ox := m[0]*x + m[4]*y + m[12]
	oy := m[1]*x + m[5]*y + m[13]
	return ox, oy
}
