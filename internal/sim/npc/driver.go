package npc

import (
	"log"

	"wyrnlands.game/internal/sim/entity"
	"wyrnlands.game/internal/sim/survival"
)

// Mover performs the direct (non-pathfinding) move of an NPC. It reports
// false when the destination is not walkable or the position failed to
// persist.
type Mover interface {
	MoveNPC(n *entity.State, x, y int) bool
}

// WorkResolver resolves one work shift.
type WorkResolver interface {
	ProcessWorkShift(entityType, entityID string)
}

// Driver evaluates and executes one NPC's activity per tick.
type Driver struct {
	NPCs   *entity.NPCStore
	Work   WorkResolver
	Mover  Mover
	Logger *log.Logger

	// OnDeath fires after a dead NPC has been dropped from the live index.
	OnDeath func(n *entity.State)
}

// Process runs one tick for one NPC. newDay gates the daily survival decay;
// the engine guarantees it is true at most once per game day.
func (d *Driver) Process(n *entity.State, hour int, newDay bool) {
	if n == nil {
		return
	}

	if newDay {
		// Decay a copy and route the change through the store so a failed
		// write reverts cleanly.
		needs := n.Needs
		res := survival.ApplyDailyEffects(&needs)
		if res.NeedsChanged || res.HealthChanged {
			d.NPCs.UpdateAttributes(n.ID, map[string]any{
				"hunger": needs.Hunger,
				"thirst": needs.Thirst,
				"health": needs.Health,
			})
		}
		if res.IsDead {
			d.NPCs.Retire(n.ID)
			if d.Logger != nil {
				d.Logger.Printf("npc: %s (%s) died", n.Name, n.ID)
			}
			if d.OnDeath != nil {
				d.OnDeath(n)
			}
			return
		}
	}

	dec := TargetFor(hour, n.Schedule, n.X, n.Y)
	if dec.State != n.Activity || targetDiffers(n, dec) {
		updates := map[string]any{"currentState": dec.State}
		if dec.Target != nil {
			updates["targetX"] = dec.Target.X
			updates["targetY"] = dec.Target.Y
		} else if n.HasTarget {
			updates["targetX"] = nil
			updates["targetY"] = nil
		}
		d.NPCs.UpdateAttributes(n.ID, updates)
	}

	switch n.Activity {
	case entity.ActivityTraveling:
		d.travel(n)
	case entity.ActivityWorking:
		d.Work.ProcessWorkShift("NPC", n.ID)
	default:
		// Sleeping, Eating, Idle: no mechanical effect yet.
	}
}

func (d *Driver) travel(n *entity.State) {
	if !n.HasTarget {
		d.NPCs.UpdateAttributes(n.ID, map[string]any{"currentState": entity.ActivityIdle})
		return
	}
	if !n.AtTarget() {
		d.Mover.MoveNPC(n, n.TargetX, n.TargetY)
	}
	if n.AtTarget() {
		d.NPCs.UpdateAttributes(n.ID, map[string]any{
			"currentState": entity.ActivityIdle,
			"targetX":      nil,
			"targetY":      nil,
		})
	}
}

func targetDiffers(n *entity.State, dec Decision) bool {
	if dec.Target == nil {
		return false
	}
	return !n.HasTarget || n.TargetX != dec.Target.X || n.TargetY != dec.Target.Y
}
