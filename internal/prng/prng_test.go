package prng

import (
	"strings"
	"testing"
)

func TestNextDeterminism(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 50; i++ {
		va, vb := a.Next(), b.Next()
		if va != vb {
			t.Fatalf("sequences diverged at draw %d: %v != %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, va)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Next() != b.Next() {
			same = false
			break
		}
	}
	if same {
		t.Error("expected different seeds to produce different sequences")
	}
}

func TestNegativeAndLargeSeeds(t *testing.T) {
	for _, seed := range []int64{-1, -999999, 0, 1 << 62} {
		s := New(seed)
		for i := 0; i < 20; i++ {
			v := s.Next()
			if v < 0 || v >= 1 {
				t.Fatalf("seed %d: draw out of [0,1): %v", seed, v)
			}
		}
	}
}

func TestIntBetween(t *testing.T) {
	s := New(7)

	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		v := s.IntBetween(1, 3)
		if v < 1 || v > 3 {
			t.Fatalf("value %d outside [1,3]", v)
		}
		seen[v] = true
	}
	// Both ends are inclusive and should show up over 500 draws.
	if !seen[1] || !seen[3] {
		t.Errorf("expected both endpoints to appear, saw %v", seen)
	}

	if v := s.IntBetween(5, 5); v != 5 {
		t.Errorf("degenerate range should return min, got %d", v)
	}
}

func TestIntBetweenEqualBoundsAdvancesState(t *testing.T) {
	a := New(7)
	b := New(7)

	// Equal bounds still consume one draw, so the streams stay aligned.
	if v := a.IntBetween(5, 5); v != 5 {
		t.Fatalf("expected 5, got %d", v)
	}
	b.Next()

	for i := 0; i < 10; i++ {
		if va, vb := a.Next(), b.Next(); va != vb {
			t.Fatalf("streams diverged at draw %d: %v != %v", i, va, vb)
		}
	}
}

func TestChoice(t *testing.T) {
	s := New(11)

	items := []string{"a", "b", "c"}
	for i := 0; i < 100; i++ {
		v, err := s.Choice(items)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		found := false
		for _, item := range items {
			if v == item {
				found = true
			}
		}
		if !found {
			t.Fatalf("choice %q not in items", v)
		}
	}

	if _, err := s.Choice(nil); err == nil {
		t.Error("expected error for empty choice set")
	}
}

func TestBool(t *testing.T) {
	s := New(3)
	var trues, falses int
	for i := 0; i < 200; i++ {
		if s.Bool() {
			trues++
		} else {
			falses++
		}
	}
	if trues == 0 || falses == 0 {
		t.Errorf("expected both outcomes over 200 draws, got %d/%d", trues, falses)
	}
}

func TestStringOf(t *testing.T) {
	s := New(99)

	v, err := s.StringOf(16, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 16 {
		t.Errorf("expected length 16, got %d", len(v))
	}
	for _, c := range v {
		if !strings.ContainsRune("abc", c) {
			t.Errorf("character %q outside charset", c)
		}
	}

	if _, err := s.StringOf(5, ""); err == nil {
		t.Error("expected error for empty charset")
	}
}

func TestReadDeterminism(t *testing.T) {
	a := New(1234)
	b := New(1234)

	bufA := make([]byte, 64)
	bufB := make([]byte, 64)

	if _, err := a.Read(bufA); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.Read(bufB); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(bufA) != string(bufB) {
		t.Error("expected identical byte streams for identical seeds")
	}
}

func TestNewFromEntropy(t *testing.T) {
	s, seed := NewFromEntropy()
	if s == nil {
		t.Fatal("expected a source")
	}
	if seed < 0 {
		t.Errorf("expected non-negative derived seed, got %d", seed)
	}

	// Reconstructing from the reported seed reproduces the sequence.
	replay := New(seed)
	for i := 0; i < 10; i++ {
		if s.Next() != replay.Next() {
			t.Fatal("reported seed does not reproduce the sequence")
		}
	}
}
