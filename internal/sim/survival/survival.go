// Package survival computes daily needs decay and its health consequences for
// any entity carrying the shared hunger/thirst/health triple.
package survival

import "math"

const (
	HungerDecayPerDay = 10.0
	ThirstDecayPerDay = 15.0
	// StarvationDamage is applied at most once per day even when hunger and
	// thirst are both empty.
	StarvationDamage = 5.0

	NeedMax = 100.0
)

// Needs are always clamped to [0,100]. Health 0 is terminal.
type Needs struct {
	Hunger float64
	Thirst float64
	Health float64
}

type Result struct {
	NeedsChanged  bool
	HealthChanged bool
	HealthDamage  float64
	IsDead        bool
}

// ApplyDailyEffects mutates n with one day of decay and reports what changed.
// Call once per entity per game day; the engine owns day-boundary detection.
// A nil or malformed record yields the zero Result with no mutation.
func ApplyDailyEffects(n *Needs) Result {
	if n == nil || math.IsNaN(n.Hunger) || math.IsNaN(n.Thirst) {
		return Result{}
	}

	var res Result

	prevHunger, prevThirst := n.Hunger, n.Thirst
	n.Hunger = floorZero(n.Hunger - HungerDecayPerDay)
	n.Thirst = floorZero(n.Thirst - ThirstDecayPerDay)
	res.NeedsChanged = n.Hunger != prevHunger || n.Thirst != prevThirst

	if n.Hunger == 0 || n.Thirst == 0 {
		prevHealth := n.Health
		n.Health = floorZero(n.Health - StarvationDamage)
		if n.Health < prevHealth {
			res.HealthChanged = true
			res.HealthDamage = prevHealth - n.Health
		}
	}

	res.IsDead = n.Health <= 0
	return res
}

// Eat replenishes hunger, clamped to the 0..100 band.
func Eat(n *Needs, amount float64) {
	if n == nil || amount <= 0 {
		return
	}
	n.Hunger = clampNeed(n.Hunger + amount)
}

// Drink replenishes thirst, clamped to the 0..100 band.
func Drink(n *Needs, amount float64) {
	if n == nil || amount <= 0 {
		return
	}
	n.Thirst = clampNeed(n.Thirst + amount)
}

// Heal restores health, clamped to the 0..100 band. It does not resurrect: a
// dead entity stays at 0.
func Heal(n *Needs, amount float64) {
	if n == nil || amount <= 0 || n.Health <= 0 {
		return
	}
	n.Health = clampNeed(n.Health + amount)
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampNeed(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > NeedMax {
		return NeedMax
	}
	return v
}
