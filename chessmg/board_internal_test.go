package chessmg

import "testing"

func TestValidate_DetectsCorruption(t *testing.T) {
	p := NewPosition()
	p.colors[Black] |= bb(E1)
	if p.Validate() == nil {
		t.Fatalf("expected overlapping color masks to be reported")
	}

	p = NewPosition()
	p.kinds[Queen-1] |= bb(A1)
	if p.Validate() == nil {
		t.Fatalf("expected overlapping kind masks to be reported")
	}

	p = NewPosition()
	p.kinds[Knight-1] |= bb(SquareAt(3, 3))
	if p.Validate() == nil {
		t.Fatalf("expected a kind bit without a color bit to be reported")
	}
}

func TestRays_StopAtEdge(t *testing.T) {
	for dir := range rays {
		for sq := Square(0); sq < 64; sq++ {
			d := kingDeltas[dir]
			prev := sq
			for _, to := range rays[dir][sq] {
				want, ok := prev.Offset(d)
				if !ok || want != to {
					t.Fatalf("ray %d from %v: got %v after %v", dir, sq, to, prev)
				}
				prev = to
			}
			if _, ok := prev.Offset(d); ok {
				t.Fatalf("ray %d from %v ends early at %v", dir, sq, prev)
			}
		}
	}
}
