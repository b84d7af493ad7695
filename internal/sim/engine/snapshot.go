package engine

import (
	"wyrnlands.game/internal/sim/clock"
	"wyrnlands.game/internal/sim/entity"
	"wyrnlands.game/internal/sim/survival"
)

// Snapshot is a read-only copy of the visible simulation state, built once
// per tick for the UI layer.
type Snapshot struct {
	Time       clock.GameTime
	TimeString string
	SpeedScale int
	Paused     bool
	Sleeping   bool

	Player EntitySummary
	NPCs   []EntitySummary
}

type EntitySummary struct {
	ID       string
	Name     string
	X, Y     int
	Activity entity.Activity
	Needs    survival.Needs
	Dead     bool
}

func (e *Engine) snapshotLocked(t clock.GameTime) Snapshot {
	snap := Snapshot{
		Time:       t,
		TimeString: t.String(),
		SpeedScale: e.clk.Speed(),
		Paused:     e.clk.Paused(),
		Sleeping:   e.clk.Sleeping(),
	}

	ps := e.player.State()
	snap.Player = EntitySummary{
		ID: entity.PlayerID, Name: ps.Name, X: ps.X, Y: ps.Y,
		Activity: ps.Activity, Needs: ps.Needs, Dead: e.playerDead,
	}

	for _, n := range e.npcs.Active() {
		snap.NPCs = append(snap.NPCs, EntitySummary{
			ID: n.ID, Name: n.Name, X: n.X, Y: n.Y,
			Activity: n.Activity, Needs: n.Needs,
		})
	}
	return snap
}
