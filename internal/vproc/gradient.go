package vproc

import "github.com/gogpu/swrast/geom"

// barycentricGradients solves the barycentric system
// λ(x,y) = λ(0,0) + x·(dλ/dx) + y·(dλ/dy), for the three screen-space
// vertices v0, v1, v2 (x, y only are used). Returns (dλ/dx, dλ/dy, λ0) as
// three Vec4s, one component (X,Y,Z) per vertex weight, matching the
// layout internal/raster expects in Bin.BarycentricCoords.
func barycentricGradients(v0, v1, v2 geom.Vec4) (dx, dy, base geom.Vec4) {
	x0, y0 := v0.X, v0.Y
	x1, y1 := v1.X, v1.Y
	x2, y2 := v2.X, v2.Y

	d := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if d == 0 {
		return geom.Vec4{}, geom.Vec4{}, geom.Vec4{}
	}
	invD := 1 / d

	dλ0dx := (y1 - y2) * invD
	dλ0dy := (x2 - x1) * invD
	dλ1dx := (y2 - y0) * invD
	dλ1dy := (x0 - x2) * invD
	dλ2dx := -(dλ0dx + dλ1dx)
	dλ2dy := -(dλ0dy + dλ1dy)

	λ0at0 := ((y1-y2)*(0-x2) + (x2-x1)*(0-y2)) * invD
	λ1at0 := ((y2-y0)*(0-x2) + (x0-x2)*(0-y2)) * invD
	λ2at0 := 1 - λ0at0 - λ1at0

	return geom.Vec4{X: dλ0dx, Y: dλ1dx, Z: dλ2dx},
		geom.Vec4{X: dλ0dy, Y: dλ1dy, Z: dλ2dy},
		geom.Vec4{X: λ0at0, Y: λ1at0, Z: λ2at0}
}

// signedArea2D returns ((p1-p0) x (p2-p0)).z in screen space, used for
// back/front-face culling.
func signedArea2D(v0, v1, v2 geom.Vec4) float64 {
	ax, ay := v1.X-v0.X, v1.Y-v0.Y
	bx, by := v2.X-v0.X, v2.Y-v0.Y
	return ax*by - ay*bx
}
