package engine

import "testing"

func TestRNG_Deterministic(t *testing.T) {
	rng1 := NewRNG(42)
	rng2 := NewRNG(42)

	for i := 0; i < 20; i++ {
		a := rng1.Intn(6)
		b := rng2.Intn(6)
		if a != b {
			t.Fatalf("call %d: got %d and %d from same seed", i, a, b)
		}
	}
}

func TestRNG_Intn_Range(t *testing.T) {
	rng := NewRNG(99)

	for i := 0; i < 1000; i++ {
		r := rng.Intn(6)
		if r < 0 || r >= 6 {
			t.Fatalf("value out of range [0,6): got %d", r)
		}
	}
}

func TestRNG_Shuffle_Deterministic(t *testing.T) {
	shuffled := func(seed int64) []int {
		xs := []int{0, 1, 2, 3, 4, 5, 6, 7}
		NewRNG(seed).Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
		return xs
	}
	a, b := shuffled(7), shuffled(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("shuffle differs at %d: %v vs %v", i, a, b)
		}
	}
}

func TestRNG_Shuffle_Permutation(t *testing.T) {
	xs := []int{0, 1, 2, 3, 4, 5}
	NewRNG(3).Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	seen := map[int]bool{}
	for _, x := range xs {
		seen[x] = true
	}
	if len(seen) != 6 {
		t.Errorf("shuffle lost elements: %v", xs)
	}
}

func TestRNG_Position(t *testing.T) {
	rng := NewRNG(1)
	if rng.Position() != 0 {
		t.Fatalf("expected position 0, got %d", rng.Position())
	}
	rng.Shuffle(4, func(i, j int) {})
	if rng.Position() != 3 {
		t.Errorf("expected position 3 after shuffling 4 elements, got %d", rng.Position())
	}
	if rng.Seed() != 1 {
		t.Errorf("expected seed 1, got %d", rng.Seed())
	}
}

func TestRestoreRNG_Position(t *testing.T) {
	rng := RestoreRNG(42, 5)
	if rng.Position() != 5 {
		t.Errorf("expected position 5, got %d", rng.Position())
	}
	if rng.Seed() != 42 {
		t.Errorf("expected seed 42, got %d", rng.Seed())
	}
}
