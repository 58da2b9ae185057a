package testutil

import "testing"

func TestDeterministicNoise32(t *testing.T) {
	a := DeterministicNoise32(42, 1.0, 64)
	b := DeterministicNoise32(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("noise[%d] = %v out of range", i, a[i])
		}
	}
}

func TestDeterministicNoise32DifferentSeeds(t *testing.T) {
	a := DeterministicNoise32(1, 1.0, 16)
	b := DeterministicNoise32(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse32(t *testing.T) {
	imp := Impulse32(8, 3)
	if len(imp) != 8 {
		t.Fatalf("len = %d, want 8", len(imp))
	}
	for i, v := range imp {
		if i == 3 {
			if v != 1 {
				t.Fatalf("imp[3] = %v, want 1", v)
			}
		} else if v != 0 {
			t.Fatalf("imp[%d] = %v, want 0", i, v)
		}
	}
}

func TestImpulse32OutOfBounds(t *testing.T) {
	imp := Impulse32(4, 10)
	for i, v := range imp {
		if v != 0 {
			t.Fatalf("imp[%d] = %v, want all zeros for out-of-bounds pos", i, v)
		}
	}
}

func TestDC32(t *testing.T) {
	d := DC32(0.25, 4)
	if len(d) != 4 {
		t.Fatalf("len = %d, want 4", len(d))
	}
	for i, v := range d {
		if v != 0.25 {
			t.Fatalf("DC32[%d] = %v, want 0.25", i, v)
		}
	}
}
