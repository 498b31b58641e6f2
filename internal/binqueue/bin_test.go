package binqueue

import "testing"

func TestReserveAndOverflow(t *testing.T) {
	q := New(4)
	for i := 0; i < 4; i++ {
		if err := q.Reserve(Bin{PrimIndex: uint64(i)}); err != nil {
			t.Fatalf("Reserve(%d) = %v, want nil", i, err)
		}
	}
	if err := q.Reserve(Bin{}); err != ErrOverflow {
		t.Fatalf("Reserve() on full bank = %v, want ErrOverflow", err)
	}
}

func TestActiveBinsReflectsReservations(t *testing.T) {
	q := New(8)
	for i := 0; i < 3; i++ {
		q.Reserve(Bin{PrimIndex: uint64(i)})
	}
	bins := q.ActiveBins()
	if len(bins) != 3 {
		t.Fatalf("ActiveBins() len = %d, want 3", len(bins))
	}
	for i, b := range bins {
		if b.PrimIndex != uint64(i) {
			t.Errorf("bin %d PrimIndex = %d, want %d", i, b.PrimIndex, i)
		}
	}
}

func TestFlipResetsDrainedBank(t *testing.T) {
	q := New(4)
	q.Reserve(Bin{PrimIndex: 1})
	q.Flip()
	if len(q.ActiveBins()) != 0 {
		t.Fatalf("ActiveBins() after Flip = %d, want 0 (fresh bank)", len(q.ActiveBins()))
	}
	q.Flip()
	bins := q.ActiveBins()
	if len(bins) != 0 {
		t.Fatalf("ActiveBins() after second Flip = %v, want empty (drained bank reset on reactivation)", bins)
	}
}
