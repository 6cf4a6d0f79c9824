package dataset

import (
	"math/rand"
	"reflect"
	"testing"
)

func names(samples []Sample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.Name
	}
	return out
}

func TestSamplerFixedOrder(t *testing.T) {
	s := NewSampler(Default(), false, 7)
	want := []string{"Alice", "Bob", "Charlie", "Diana"}
	for epoch := 0; epoch < 3; epoch++ {
		if got := names(s.Epoch()); !reflect.DeepEqual(got, want) {
			t.Fatalf("epoch %d order %v, want %v", epoch, got, want)
		}
	}
	if s.Len() != 4 {
		t.Fatalf("expected 4 samples, got %d", s.Len())
	}
}

func TestSamplerShuffleDeterministic(t *testing.T) {
	s1 := NewSampler(Default(), true, 123)
	s2 := NewSampler(Default(), true, 123)

	seen := map[string]bool{}
	for epoch := 0; epoch < 20; epoch++ {
		o1 := names(s1.Epoch())
		o2 := names(s2.Epoch())
		if !reflect.DeepEqual(o1, o2) {
			t.Fatalf("shuffle not deterministic at epoch %d: %v vs %v", epoch, o1, o2)
		}
		if len(o1) != 4 {
			t.Fatalf("expected 4 samples, got %d", len(o1))
		}
		seen[o1[0]] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected shuffled epochs to vary, first samples %v", seen)
	}
}

func TestSamplerDoesNotMutateInput(t *testing.T) {
	samples := Default()
	s := NewSampler(samples, true, 5)
	for i := 0; i < 5; i++ {
		s.Epoch()
	}
	if got := names(samples); !reflect.DeepEqual(got, []string{"Alice", "Bob", "Charlie", "Diana"}) {
		t.Fatalf("input reordered: %v", got)
	}
}

func TestSamplerUsesSeedAsGiven(t *testing.T) {
	for _, seed := range []int64{0, 42} {
		want := names(Default())
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(want), func(i, j int) {
			want[i], want[j] = want[j], want[i]
		})
		got := names(NewSampler(Default(), true, seed).Epoch())
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("seed %d: order %v, want %v", seed, got, want)
		}
	}
}
