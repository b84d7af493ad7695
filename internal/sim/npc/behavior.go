// Package npc drives the per-tick NPC behavior state machine. The target
// state is recomputed fresh from time and location every tick (self-healing
// on purpose) and is kept separate from the side-effecting act step.
package npc

import "wyrnlands.game/internal/sim/entity"

const (
	nightStartHour = 22
	nightEndHour   = 6
)

// Decision is a computed target state. Target is nil unless the state is
// Traveling.
type Decision struct {
	State  entity.Activity
	Target *entity.Location
}

func isNight(hour int) bool {
	return hour >= nightStartHour || hour < nightEndHour
}

// TargetFor decides what an NPC at (x,y) should be doing at the given hour.
// Pure; the driver persists and acts on the result.
func TargetFor(hour int, sched *entity.Schedule, x, y int) Decision {
	if sched == nil {
		return Decision{State: entity.ActivityIdle}
	}

	at := func(loc *entity.Location) bool {
		return loc != nil && x == loc.X && y == loc.Y
	}

	if isNight(hour) {
		if sched.Home == nil {
			return Decision{State: entity.ActivityIdle}
		}
		if at(sched.Home) {
			return Decision{State: entity.ActivitySleeping}
		}
		return Decision{State: entity.ActivityTraveling, Target: sched.Home}
	}

	if sched.Work != nil && hour >= sched.WorkStartHour && hour < sched.WorkEndHour {
		if at(sched.Work) {
			return Decision{State: entity.ActivityWorking}
		}
		return Decision{State: entity.ActivityTraveling, Target: sched.Work}
	}

	// Off hours: head home, idle once there.
	if sched.Home != nil && !at(sched.Home) {
		return Decision{State: entity.ActivityTraveling, Target: sched.Home}
	}
	return Decision{State: entity.ActivityIdle}
}
