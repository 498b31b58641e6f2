package vproc

import "github.com/gogpu/swrast/geom"

// clipVertex pairs a clip-space position with its varyings, the unit the
// line/triangle clippers interpolate.
type clipVertex struct {
	pos geom.Vec4
	vry [4]geom.Vec4
}

func lerpClipVertex(a, b clipVertex, t float64) clipVertex {
	var out clipVertex
	out.pos = geom.Lerp(a.pos, b.pos, t)
	for i := range out.vry {
		out.vry[i] = geom.Lerp(a.vry[i], b.vry[i], t)
	}
	return out
}

// clipLineNearFar clips a line segment against the six canonical clip
// planes using Liang-Barsky. Returns ok=false if the segment is entirely
// outside.
func clipLineNearFar(a, b clipVertex) (clipVertex, clipVertex, bool) {
	t0, t1 := 0.0, 1.0
	dx := b.pos.X - a.pos.X
	dy := b.pos.Y - a.pos.Y
	dz := b.pos.Z - a.pos.Z
	dw := b.pos.W - a.pos.W

	planes := [6][2]float64{
		{a.pos.W + a.pos.X, dw + dx}, // -w <= x => x+w >= 0
		{a.pos.W - a.pos.X, dw - dx}, // x <= w
		{a.pos.W + a.pos.Y, dw + dy},
		{a.pos.W - a.pos.Y, dw - dy},
		{a.pos.W + a.pos.Z, dw + dz},
		{a.pos.W - a.pos.Z, dw - dz},
	}

	for _, pl := range planes {
		p, q := pl[0], pl[1]
		// Clip against p + q*t >= 0.
		if q == 0 {
			if p < 0 {
				return clipVertex{}, clipVertex{}, false
			}
			continue
		}
		t := -p / q
		if q > 0 {
			if t > t1 {
				return clipVertex{}, clipVertex{}, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return clipVertex{}, clipVertex{}, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	if t0 > t1 {
		return clipVertex{}, clipVertex{}, false
	}
	return lerpClipVertex(a, b, t0), lerpClipVertex(a, b, t1), true
}

// clipTriangleNearPlane implements Sutherland-Hodgman clipping against the
// single near plane z >= -w. May emit 1 or 2 triangles (returned as a fan
// of up to 4 vertices: [v0 v1 v2] or [v0 v1 v2 v3]).
func clipTriangleNearPlane(verts [3]clipVertex) []clipVertex {
	inside := func(v clipVertex) bool { return v.pos.Z >= -v.pos.W }

	var out []clipVertex
	for i := 0; i < 3; i++ {
		cur := verts[i]
		next := verts[(i+1)%3]
		curIn := inside(cur)
		nextIn := inside(next)

		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			dz := next.pos.Z - cur.pos.Z
			dw := next.pos.W - cur.pos.W
			// Solve z + w == 0 along the edge: (cur.z+cur.w) + t*(dz+dw) == 0.
			denom := dz + dw
			t := 0.0
			if denom != 0 {
				t = -(cur.pos.Z + cur.pos.W) / denom
			}
			out = append(out, lerpClipVertex(cur, next, t))
		}
	}
	return out
}

// fanTriangles re-triangulates a convex polygon (vertex fan from v0) into
// triangles, used for the 1-2 triangles a near-plane clip may emit.
func fanTriangles(poly []clipVertex) [][3]clipVertex {
	if len(poly) < 3 {
		return nil
	}
	out := make([][3]clipVertex, 0, len(poly)-2)
	for i := 1; i < len(poly)-1; i++ {
		out = append(out, [3]clipVertex{poly[0], poly[i], poly[i+1]})
	}
	return out
}
