// Package geom provides the small vector and matrix types the rasterizer
// pipeline needs: clip-space Vec4, screen/world Vec3, and the 4x4
// projection/viewport matrices that operate on them.
package geom

import "math"

// Vec2 represents a 2D point or displacement.
type Vec2 struct {
	X, Y float64
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Vec3 is a 3D vector used for positions, normals, and screen coordinates.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the vector sum of v and w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v minus w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Mul returns v scaled by s.
func (v Vec3) Mul(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Cross returns the 3D cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Vec4 is a homogeneous clip-space coordinate, or a shader varying vector.
//
// Every varying slot in a FragmentBin is a Vec4 regardless of the
// dimensionality the shader author actually uses; unused components are
// left zero, matching the original SoftLight SL_ShaderProcessor contract.
type Vec4 struct {
	X, Y, Z, W float64
}

// Add returns the sum of v and w.
func (v Vec4) Add(w Vec4) Vec4 {
	return Vec4{v.X + w.X, v.Y + w.Y, v.Z + w.Z, v.W + w.W}
}

// Mul returns v scaled by s.
func (v Vec4) Mul(s float64) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Vec3 drops the W component.
func (v Vec4) Vec3() Vec3 { return Vec3{v.X, v.Y, v.Z} }

// InClipBounds reports whether the point is inside the canonical clip
// volume -w <= x,y,z <= w. A negative w is never inside; a w of exactly
// zero admits only the origin.
func (v Vec4) InClipBounds() bool {
	w := v.W
	return -w <= v.X && v.X <= w &&
		-w <= v.Y && v.Y <= w &&
		-w <= v.Z && v.Z <= w
}

// PerspectiveDivide divides x, y, z by w in place, returning the resulting
// NDC position and the original w (preserved for perspective-correct
// interpolation).
func (v Vec4) PerspectiveDivide() (ndc Vec3, w float64) {
	invW := 1.0 / v.W
	return Vec3{v.X * invW, v.Y * invW, v.Z * invW}, v.W
}

// Lerp returns the linear interpolation between a and b at parameter t.
func Lerp(a, b Vec4, t float64) Vec4 {
	return Vec4{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
		W: a.W + (b.W-a.W)*t,
	}
}

// Clamp01 clamps each component of c to [0, 1].
func Clamp01(c Vec4) Vec4 {
	return Vec4{clamp01(c.X), clamp01(c.Y), clamp01(c.Z), clamp01(c.W)}
}

func clamp01(f float64) float64 {
	return math.Min(1, math.Max(0, f))
}
