package profile

import "testing"

func TestGet_Builtin(t *testing.T) {
	p := Get("balanced")
	if p.Quality != 80 || p.Format != "jpeg" {
		t.Errorf("balanced: got %+v", p)
	}
	if w := Get("webp"); w.Format != "webp" {
		t.Errorf("webp format: got %q", w.Format)
	}
}

func TestGet_UnknownFallsBack(t *testing.T) {
	p := Get("print")
	if p.Name != "print" {
		t.Errorf("name: got %q, want print", p.Name)
	}
	if p.Quality != Get(DefaultName).Quality {
		t.Errorf("quality: got %d", p.Quality)
	}
	if Known("print") {
		t.Error("print reported as known")
	}
}

func TestOverride(t *testing.T) {
	p := Get("small").Override(0, "")
	if p.Quality != 55 || p.Format != "jpeg" {
		t.Errorf("no-op override changed profile: %+v", p)
	}
	p = Get("small").Override(30, "webp")
	if p.Quality != 30 || p.Format != "webp" {
		t.Errorf("override: got %+v", p)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	want := []string{"balanced", "high", "small", "webp"}
	if len(names) != len(want) {
		t.Fatalf("names: got %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d]: got %q, want %q", i, names[i], want[i])
		}
	}
	for _, n := range names {
		if q := Get(n).Quality; q < 1 || q > 100 {
			t.Errorf("%s: quality %d out of range", n, q)
		}
	}
}
