// Package skills owns per-entity skill level and XP, the leveling formula and
// the wage/output modifiers derived from level. The leveling loop exists in
// exactly one place (ApplyXP) so player and NPC bookkeeping cannot diverge.
package skills

const MaxLevel = 100

// XPForNextLevel is the XP threshold to go from level to level+1.
func XPForNextLevel(level int) float64 {
	return float64(level) * 100
}

// Record is one (owner, skill) pair. Invariant: XP < XPForNextLevel(Level),
// except at MaxLevel where XP is pinned to 0.
type Record struct {
	Level int
	XP    float64
}

// DefaultRecord is what absent skills read as.
func DefaultRecord() Record { return Record{Level: 1, XP: 0} }

// ApplyXP returns the record after adding xp, consuming thresholds one level
// at a time. Excess XP at MaxLevel is discarded, never banked.
func ApplyXP(rec Record, xp float64) Record {
	if xp <= 0 || rec.Level >= MaxLevel {
		if rec.Level >= MaxLevel {
			rec.Level = MaxLevel
			rec.XP = 0
		}
		return rec
	}
	rec.XP += xp
	for rec.XP >= XPForNextLevel(rec.Level) && rec.Level < MaxLevel {
		rec.XP -= XPForNextLevel(rec.Level)
		rec.Level++
	}
	if rec.Level >= MaxLevel {
		rec.Level = MaxLevel
		rec.XP = 0
	}
	return rec
}

// Modifiers scale wage and goods output by skill level. Linear on purpose;
// changing the slope changes game balance.
type Modifiers struct {
	Wage   float64
	Output float64
}

func CalculateModifiers(level int) Modifiers {
	return Modifiers{
		Wage:   1.0 + float64(level)*0.1,
		Output: 1.0 + float64(level)*0.1*1.5,
	}
}
