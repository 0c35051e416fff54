package render

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/pane"
)

// vertexStride is the byte stride per vertex in the rect render pipeline.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
//
// Total = 24 bytes per vertex.
const vertexStride = 24

// vertsPerRect is the number of vertices each display command expands to:
// two triangles, no index buffer.
const vertsPerRect = 6

// buildRectVertices expands a display list into vertex data, reusing the
// provided staging buffer and growing it only when the frame needs more
// room. Returns the (possibly reallocated) staging buffer and the slice of
// valid vertex bytes. Vertex order within the buffer matches list order, so
// GPU draw order matches painter's order.
//
// Colors are premultiplied here, once per command, for the premultiplied
// alpha blend state of the pipeline.
func buildRectVertices(list pane.DisplayList, staging []byte) ([]byte, []byte) {
	needed := len(list) * vertsPerRect * vertexStride
	if needed == 0 {
		return staging, nil
	}
	if cap(staging) < needed {
		staging = make([]byte, needed)
	} else {
		staging = staging[:needed]
	}

	offset := 0
	for i := range list {
		cmd := &list[i]
		x0 := cmd.Rect.X
		y0 := cmd.Rect.Y
		x1 := cmd.Rect.X + cmd.Rect.Width
		y1 := cmd.Rect.Y + cmd.Rect.Height

		p := cmd.Color.Premultiplied()
		color := [4]float32{float32(p.R), float32(p.G), float32(p.B), float32(p.A)}

		// Triangle 1: top-left, bottom-left, bottom-right.
		offset = putVertex(staging, offset, x0, y0, color)
		offset = putVertex(staging, offset, x0, y1, color)
		offset = putVertex(staging, offset, x1, y1, color)
		// Triangle 2: bottom-right, top-right, top-left.
		offset = putVertex(staging, offset, x1, y1, color)
		offset = putVertex(staging, offset, x1, y0, color)
		offset = putVertex(staging, offset, x0, y0, color)
	}
	return staging, staging[:offset]
}

func putVertex(buf []byte, offset int, x, y float32, color [4]float32) int {
	putFloat32(buf, offset+0, x)
	putFloat32(buf, offset+4, y)
	putFloat32(buf, offset+8, color[0])
	putFloat32(buf, offset+12, color[1])
	putFloat32(buf, offset+16, color[2])
	putFloat32(buf, offset+20, color[3])
	return offset + vertexStride
}

func putFloat32(buf []byte, offset int, v float32) {
	binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
}

// projectionBytes encodes a column-major matrix as the 64-byte uniform
// buffer payload.
func projectionBytes(m [16]float32) []byte {
	buf := make([]byte, 64)
	for i, v := range m {
		putFloat32(buf, i*4, v)
	}
	return buf
}
