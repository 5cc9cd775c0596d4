package deck

import (
	"math/rand"
	"slices"
	"strconv"
	"testing"
)

func ident(s string) string { return s }

func names(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + strconv.Itoa(i)
	}
	return out
}

func TestShuffleKeepsElements(t *testing.T) {
	in := names("w", 10)
	orig := slices.Clone(in)
	got := Shuffle(rand.New(rand.NewSource(7)), in)

	if !slices.Equal(in, orig) {
		t.Fatalf("Shuffle modified its input: %v", in)
	}
	sorted := slices.Clone(got)
	slices.Sort(sorted)
	want := slices.Clone(orig)
	slices.Sort(want)
	if !slices.Equal(sorted, want) {
		t.Errorf("Shuffle(%v) = %v, not a permutation", orig, got)
	}
}

func TestShuffleDeterministic(t *testing.T) {
	in := names("w", 12)
	a := Shuffle(rand.New(rand.NewSource(42)), in)
	b := Shuffle(rand.New(rand.NewSource(42)), in)
	if !slices.Equal(a, b) {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestShuffleUniformFirstSlot(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	in := []string{"a", "b", "c", "d"}
	counts := map[string]int{}
	const rounds = 40000
	for i := 0; i < rounds; i++ {
		counts[Shuffle(rng, in)[0]]++
	}
	for _, k := range in {
		share := float64(counts[k]) / rounds
		if share < 0.22 || share > 0.28 {
			t.Errorf("first slot held %q %.3f of the time, want about 0.25", k, share)
		}
	}
}

func TestSampleNoDuplicates(t *testing.T) {
	pool := append(names("d", 6), "d1", "d2", "d3")
	got := Sample(rand.New(rand.NewSource(3)), pool, 6, ident, nil)
	if len(got) != 6 {
		t.Fatalf("Sample returned %d items, want 6", len(got))
	}
	seen := map[string]bool{}
	for _, g := range got {
		if seen[g] {
			t.Errorf("Sample returned %q twice: %v", g, got)
		}
		seen[g] = true
	}
}

func TestSampleRespectsExclude(t *testing.T) {
	pool := names("d", 5)
	exclude := map[string]struct{}{"d0": {}, "d1": {}}
	got := Sample(rand.New(rand.NewSource(9)), pool, 10, ident, exclude)
	if len(got) != 3 {
		t.Fatalf("Sample returned %d items, want 3", len(got))
	}
	for _, g := range got {
		if _, bad := exclude[g]; bad {
			t.Errorf("Sample returned excluded id %q", g)
		}
	}
}

func TestSampleEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := Sample(rng, names("d", 4), 0, ident, nil); got != nil {
		t.Errorf("Sample(n=0) = %v, want nil", got)
	}
	if got := Sample[string](rng, nil, 3, ident, nil); got != nil {
		t.Errorf("Sample(empty pool) = %v, want nil", got)
	}
}

func TestDeal(t *testing.T) {
	cases := []struct {
		name        string
		targets     []string
		pool        []string
		n           int
		wantLen     int
		distractors int
	}{
		{"full draw", names("t", 2), names("d", 10), 4, 6, 4},
		{"small pool", names("t", 2), names("d", 3), 4, 5, 3},
		{"no distractors", names("t", 3), names("d", 5), 0, 3, 0},
		{"pool overlaps targets", names("t", 2), append(names("t", 2), "x", "y"), 4, 4, 2},
		{"duplicate target", []string{"t0", "t0", "t1"}, names("d", 2), 1, 3, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hand := Deal(rand.New(rand.NewSource(11)), tc.targets, tc.pool, tc.n, ident)
			if len(hand) != tc.wantLen {
				t.Fatalf("Deal returned %d items %v, want %d", len(hand), hand, tc.wantLen)
			}
			seen := map[string]int{}
			for _, h := range hand {
				seen[h]++
			}
			for _, target := range tc.targets {
				if seen[target] != 1 {
					t.Errorf("target %q appears %d times in %v", target, seen[target], hand)
				}
			}
			extra := 0
			for id, c := range seen {
				if c != 1 {
					t.Errorf("id %q appears %d times", id, c)
				}
				if !slices.Contains(tc.targets, id) {
					extra++
				}
			}
			if extra != tc.distractors {
				t.Errorf("got %d distractors, want %d", extra, tc.distractors)
			}
		})
	}
}

func TestDealDeterministic(t *testing.T) {
	a := Deal(rand.New(rand.NewSource(5)), names("t", 2), names("d", 20), 4, ident)
	b := Deal(rand.New(rand.NewSource(5)), names("t", 2), names("d", 20), 4, ident)
	if !slices.Equal(a, b) {
		t.Errorf("same seed dealt %v and %v", a, b)
	}
}
