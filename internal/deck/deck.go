// Package deck builds the randomized item sequences a level is played with.
//
// Every function takes its random source explicitly. A *math/rand.Rand built
// from a fixed seed yields the same output on every run.
package deck

// Source is the subset of *math/rand.Rand the deck needs.
type Source interface {
	Intn(n int) int
}

// Shuffle returns a uniformly permuted copy of items (Fisher–Yates).
// The input slice is left untouched.
func Shuffle[T any](rng Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample draws up to n elements from pool without replacement. Elements whose
// id is in exclude, or whose id was already drawn, are never returned. Fewer
// than n elements come back only when the pool runs out of eligible ids.
func Sample[T any](rng Source, pool []T, n int, id func(T) string, exclude map[string]struct{}) []T {
	if n <= 0 || len(pool) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(pool))
	eligible := make([]T, 0, len(pool))
	for _, p := range pool {
		key := id(p)
		if _, skip := exclude[key]; skip {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		eligible = append(eligible, p)
	}

	if n > len(eligible) {
		n = len(eligible)
	}
	// Partial Fisher–Yates: only the first n slots need to be settled.
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(eligible)-i)
		eligible[i], eligible[j] = eligible[j], eligible[i]
	}
	return eligible[:n]
}

// Deal combines every target exactly once with up to n distractors sampled
// from pool, then shuffles the whole sequence. Targets with a repeated id are
// collapsed to their first occurrence.
func Deal[T any](rng Source, targets, pool []T, n int, id func(T) string) []T {
	taken := make(map[string]struct{}, len(targets))
	hand := make([]T, 0, len(targets)+max(n, 0))
	for _, t := range targets {
		key := id(t)
		if _, dup := taken[key]; dup {
			continue
		}
		taken[key] = struct{}{}
		hand = append(hand, t)
	}
	hand = append(hand, Sample(rng, pool, n, id, taken)...)
	return Shuffle(rng, hand)
}
