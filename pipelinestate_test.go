package swrast

import "testing"

func TestPipelineStateDefaults(t *testing.T) {
	p := NewPipelineState()
	if p.CullMode() != CullBack {
		t.Errorf("default CullMode = %v, want CullBack", p.CullMode())
	}
	if p.DepthTest() != DepthLess {
		t.Errorf("default DepthTest = %v, want DepthLess", p.DepthTest())
	}
	if !p.DepthMask() {
		t.Errorf("default DepthMask = false, want true")
	}
	if p.BlendMode() != BlendOff {
		t.Errorf("default BlendMode = %v, want BlendOff", p.BlendMode())
	}
	if p.NumVaryings() != 0 {
		t.Errorf("default NumVaryings = %d, want 0", p.NumVaryings())
	}
	if p.NumTargets() != 1 {
		t.Errorf("default NumTargets = %d, want 1", p.NumTargets())
	}
}

func TestPipelineStateSettersIndependent(t *testing.T) {
	p := NewPipelineState()
	p = p.WithCullMode(CullOff)
	p = p.WithDepthTest(DepthGreaterEqual)
	p = p.WithDepthMask(false)
	p = p.WithBlendMode(BlendAdditive)
	p = p.WithNumVaryings(3)
	p = p.WithNumTargets(4)

	if p.CullMode() != CullOff {
		t.Errorf("CullMode = %v", p.CullMode())
	}
	if p.DepthTest() != DepthGreaterEqual {
		t.Errorf("DepthTest = %v", p.DepthTest())
	}
	if p.DepthMask() {
		t.Errorf("DepthMask = true, want false")
	}
	if p.BlendMode() != BlendAdditive {
		t.Errorf("BlendMode = %v", p.BlendMode())
	}
	if p.NumVaryings() != 3 {
		t.Errorf("NumVaryings = %d", p.NumVaryings())
	}
	if p.NumTargets() != 4 {
		t.Errorf("NumTargets = %d", p.NumTargets())
	}
}

func TestDepthTestPasses(t *testing.T) {
	tests := []struct {
		dt DepthTest
		d, stored float64
		wantPasses bool
	}{
		{DepthOff, 5, 1, true},
		{DepthLess, 0.2, 0.8, true},
		{DepthLess, 0.8, 0.2, false},
		{DepthEqual, 0.5, 0.5, true},
		{DepthEqual, 0.5, 0.50001, false},
		{DepthNotEqual, 0.5, 0.6, true},
	}
	for _, tt := range tests {
		if got := tt.dt.Passes(tt.d, tt.stored); got != tt.wantPasses {
			t.Errorf("%v.Passes(%v,%v) = %v, want %v", tt.dt, tt.d, tt.stored, got, tt.wantPasses)
		}
	}
}
