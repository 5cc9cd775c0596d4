package game

import "time"

// Rules parameterizes scoring, resources and level layout.
type Rules struct {
	BasePoints  int
	StreakStep  int
	StreakBonus int

	StartingLives    int
	StartingPowerUps PowerUps
	TimedDuration    int // seconds
	FreezeTicks      int

	Distractors  int
	TotalLevels  int
	LevelQuota   map[int]int
	DefaultQuota int

	DefaultCategory string

	// FeedbackDuration is how long a toast stays up before the host hides it.
	FeedbackDuration time.Duration
}

// DefaultRules returns the stock game balance.
func DefaultRules() Rules {
	return Rules{
		BasePoints:       10,
		StreakStep:       3,
		StreakBonus:      5,
		StartingLives:    3,
		StartingPowerUps: PowerUps{Freeze: 2, Hint: 3, DoublePoints: 1},
		TimedDuration:    60,
		FreezeTicks:      10,
		Distractors:      4,
		TotalLevels:      3,
		LevelQuota:       map[int]int{1: 2, 2: 2, 3: 2},
		DefaultQuota:     2,
		DefaultCategory:  "internet",
		FeedbackDuration: 2 * time.Second,
	}
}

// Quota returns the number of correct placements level requires.
func (r Rules) Quota(level int) int {
	if q, ok := r.LevelQuota[level]; ok && q > 0 {
		return q
	}
	return max(r.DefaultQuota, 1)
}

// Points scores a correct placement of an item of the given difficulty made
// while streak consecutive answers were already correct.
func (r Rules) Points(difficulty, streak int) int {
	if difficulty < 1 {
		difficulty = 1
	}
	bonus := 0
	if r.StreakStep > 0 {
		bonus = streak / r.StreakStep * r.StreakBonus
	}
	return r.BasePoints*difficulty + bonus
}
