package crosscheck

import "testing"

func TestDiff_ReportsMissingAndSorted(t *testing.T) {
	got := map[string]uint64{"e2e4": 20, "d2d4": 20, "a2a3": 19}
	want := map[string]uint64{"e2e4": 20, "d2d4": 21, "h2h3": 20, "a2a3": 20}
	mm := diff(got, want, "test")
	if len(mm) != 3 {
		t.Fatalf("expected 3 mismatches, got %v", mm)
	}
	wantOrder := []Mismatch{
		{Move: "a2a3", Got: 19, Want: 20, Oracle: "test"},
		{Move: "d2d4", Got: 20, Want: 21, Oracle: "test"},
		{Move: "h2h3", Got: 0, Want: 20, Oracle: "test"},
	}
	for i := range wantOrder {
		if mm[i] != wantOrder[i] {
			t.Fatalf("mismatch %d: got %+v want %+v", i, mm[i], wantOrder[i])
		}
	}
}
