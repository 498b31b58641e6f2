package geom

// Mat4 is a 4x4 matrix in row-major order, following the field-naming
// convention of soypat/glgl's math/ms3.Mat4 (x<row><col>) generalized from
// 3x3 to 4x4 so the viewport and scissor transforms can be
// expressed as ordinary matrix multiplies.
type Mat4 struct {
	X00, X01, X02, X03 float64
	X10, X11, X12, X13 float64
	X20, X21, X22, X23 float64
	X30, X31, X32, X33 float64
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		X00: 1, X11: 1, X22: 1, X33: 1,
	}
}

// MulVec4 applies m to v, returning m*v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m.X00*v.X + m.X01*v.Y + m.X02*v.Z + m.X03*v.W,
		Y: m.X10*v.X + m.X11*v.Y + m.X12*v.Z + m.X13*v.W,
		Z: m.X20*v.X + m.X21*v.Y + m.X22*v.Z + m.X23*v.W,
		W: m.X30*v.X + m.X31*v.Y + m.X32*v.Z + m.X33*v.W,
	}
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	return Mat4{
		X00: m.X00*n.X00 + m.X01*n.X10 + m.X02*n.X20 + m.X03*n.X30,
		X01: m.X00*n.X01 + m.X01*n.X11 + m.X02*n.X21 + m.X03*n.X31,
		X02: m.X00*n.X02 + m.X01*n.X12 + m.X02*n.X22 + m.X03*n.X32,
		X03: m.X00*n.X03 + m.X01*n.X13 + m.X02*n.X23 + m.X03*n.X33,

		X10: m.X10*n.X00 + m.X11*n.X10 + m.X12*n.X20 + m.X13*n.X30,
		X11: m.X10*n.X01 + m.X11*n.X11 + m.X12*n.X21 + m.X13*n.X31,
		X12: m.X10*n.X02 + m.X11*n.X12 + m.X12*n.X22 + m.X13*n.X32,
		X13: m.X10*n.X03 + m.X11*n.X13 + m.X12*n.X23 + m.X13*n.X33,

		X20: m.X20*n.X00 + m.X21*n.X10 + m.X22*n.X20 + m.X23*n.X30,
		X21: m.X20*n.X01 + m.X21*n.X11 + m.X22*n.X21 + m.X23*n.X31,
		X22: m.X20*n.X02 + m.X21*n.X12 + m.X22*n.X22 + m.X23*n.X32,
		X23: m.X20*n.X03 + m.X21*n.X13 + m.X22*n.X23 + m.X23*n.X33,

		X30: m.X30*n.X00 + m.X31*n.X10 + m.X32*n.X20 + m.X33*n.X30,
		X31: m.X30*n.X01 + m.X31*n.X11 + m.X32*n.X21 + m.X33*n.X31,
		X32: m.X30*n.X02 + m.X31*n.X12 + m.X32*n.X22 + m.X33*n.X32,
		X33: m.X30*n.X03 + m.X31*n.X13 + m.X32*n.X23 + m.X33*n.X33,
	}
}

// ScissorMatrix builds the 4x4 matrix described in post-applied
// to NDC [-1,1], it maps the scissor rectangle (in fbo pixel space) back to
// [-1,1] so that generated triangles can be clamped to the scissor region
// before rasterization.
func ScissorMatrix(scissorX, scissorY, scissorW, scissorH, fboW, fboH int) Mat4 {
	// NDC -> pixel: px = (ndc*0.5+0.5)*fboW. We want the inverse mapping
	// restricted to the scissor rect re-expressed back in NDC.
	sx := float64(fboW) / float64(scissorW)
	sy := float64(fboH) / float64(scissorH)

	// Center of the scissor rect in NDC.
	cx := (float64(scissorX) + float64(scissorW)*0.5) / float64(fboW)
	cy := (float64(scissorY) + float64(scissorH)*0.5) / float64(fboH)
	ndcCx := cx*2 - 1
	ndcCy := cy*2 - 1

	m := Identity4()
	m.X00 = sx
	m.X11 = sy
	m.X03 = -ndcCx * sx
	m.X13 = -ndcCy * sy
	return m
}
