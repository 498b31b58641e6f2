package vproc

import (
	"math"
	"testing"

	"github.com/gogpu/swrast/geom"
)

func TestBarycentricGradientsReproduceWeights(t *testing.T) {
	v0 := geom.Vec4{X: 0, Y: 0}
	v1 := geom.Vec4{X: 8, Y: 0}
	v2 := geom.Vec4{X: 0, Y: 8}

	dx, dy, base := barycentricGradients(v0, v1, v2)

	eval := func(x, y float64) (float64, float64, float64) {
		return base.X + x*dx.X + y*dy.X,
			base.Y + x*dx.Y + y*dy.Y,
			base.Z + x*dx.Z + y*dy.Z
	}

	cases := []struct {
		x, y float64
		l0, l1, l2 float64
	}{
		{0, 0, 1, 0, 0},
		{8, 0, 0, 1, 0},
		{0, 8, 0, 0, 1},
		{4, 0, 0.5, 0.5, 0},
	}
	const eps = 1e-9
	for _, c := range cases {
		l0, l1, l2 := eval(c.x, c.y)
		if math.Abs(l0-c.l0) > eps || math.Abs(l1-c.l1) > eps || math.Abs(l2-c.l2) > eps {
			t.Errorf("at (%v,%v): got (%v,%v,%v), want (%v,%v,%v)", c.x, c.y, l0, l1, l2, c.l0, c.l1, c.l2)
		}
	}
}

func TestSignedArea2DOrientation(t *testing.T) {
	ccw := signedArea2D(geom.Vec4{X: 0, Y: 0}, geom.Vec4{X: 1, Y: 0}, geom.Vec4{X: 0, Y: 1})
	if ccw <= 0 {
		t.Errorf("CCW triangle signed area = %v, want > 0", ccw)
	}
	cw := signedArea2D(geom.Vec4{X: 0, Y: 0}, geom.Vec4{X: 0, Y: 1}, geom.Vec4{X: 1, Y: 0})
	if cw >= 0 {
		t.Errorf("CW triangle signed area = %v, want < 0", cw)
	}
}
