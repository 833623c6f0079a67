package viewport

import "testing"

func TestToLocalRoundtrip(t *testing.T) {
	r := Rect{X: 100, Y: 432, W: 1280, H: 288}

	testCases := []struct{ hx, hy float64 }{
		{100, 432},
		{740, 576},
		{1379, 719},
	}
	for _, tc := range testCases {
		x, y := r.ToLocal(tc.hx, tc.hy)
		hx, hy := r.ToHost(x, y)
		if hx != tc.hx || hy != tc.hy {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)", tc.hx, tc.hy, x, y, hx, hy)
		}
	}

	if x, y := r.ToLocal(100, 432); x != 0 || y != 0 {
		t.Errorf("origin maps to (%f, %f), want (0, 0)", x, y)
	}
}

func TestContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}

	tests := []struct {
		name   string
		hx, hy float64
		want   bool
	}{
		{"origin", 10, 20, true},
		{"inside", 60, 40, true},
		{"left of rect", 9, 40, false},
		{"far edge exclusive", 110, 40, false},
		{"below", 60, 70, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.hx, tt.hy); got != tt.want {
			t.Errorf("%s: Contains(%f, %f) = %v, want %v", tt.name, tt.hx, tt.hy, got, tt.want)
		}
	}
}

func TestResolveTiles(t *testing.T) {
	top := Layout{X: 0, Y: 0, W: 1, H: 0.6}
	bottom := Layout{X: 0, Y: 0.6, W: 1, H: 0.4}

	a := top.Resolve(1281, 721)
	b := bottom.Resolve(1281, 721)

	if a.Y+a.H != b.Y {
		t.Errorf("rects do not tile: top ends at %f, bottom starts at %f", a.Y+a.H, b.Y)
	}
	if a.H+b.H != 721 {
		t.Errorf("heights sum to %f, want 721", a.H+b.H)
	}
	if a.W != 1281 {
		t.Errorf("width = %f, want 1281", a.W)
	}
}

func TestResolveZeroWindow(t *testing.T) {
	r := Layout{W: 1, H: 1}.Resolve(0, 0)
	if !r.Empty() {
		t.Errorf("expected empty rect, got %+v", r)
	}
}
