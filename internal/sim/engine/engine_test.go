package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"wyrnlands.game/internal/persistence/gamedb"
	"wyrnlands.game/internal/sim/entity"
	"wyrnlands.game/internal/sim/worldmap"
)

type nopWork struct{ shifts int }

func (w *nopWork) ProcessWorkShift(entityType, entityID string) { w.shifts++ }

func newTestEngine(t *testing.T) (*Engine, *entity.NPCStore, *nopWork) {
	t.Helper()
	db, err := gamedb.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := worldmap.Seed(db, 10, 10); err != nil {
		t.Fatalf("seed map: %v", err)
	}
	grid, err := worldmap.Load(db)
	if err != nil {
		t.Fatalf("load map: %v", err)
	}
	if err := entity.CreatePlayer(db, "Aldric", 2, 2, "h1"); err != nil {
		t.Fatalf("create player: %v", err)
	}
	player, err := entity.LoadPlayer(db, nil)
	if err != nil {
		t.Fatalf("load player: %v", err)
	}
	npcs, err := entity.LoadNPCs(db, nil)
	if err != nil {
		t.Fatalf("load npcs: %v", err)
	}

	work := &nopWork{}
	e := New(Config{TickInterval: 250 * time.Millisecond}, Deps{
		Player: player,
		NPCs:   npcs,
		Grid:   grid,
		Work:   work,
	})
	return e, npcs, work
}

func TestEngine_DayRolloverAppliesDailyEffects(t *testing.T) {
	e, npcs, _ := newTestEngine(t)
	n, _ := npcs.Create(entity.Seed{Name: "Bera", X: 3, Y: 3})

	// 07:00 day 1 -> 00:00 day 2 crosses midnight once.
	e.clk.Advance(17 * 3600)

	ps := e.Snapshot().Player
	if ps.Needs.Hunger != 90 || ps.Needs.Thirst != 85 {
		t.Fatalf("player decay missing: %+v", ps.Needs)
	}
	if n.Needs.Hunger != 90 || n.Needs.Thirst != 85 {
		t.Fatalf("npc decay missing: %+v", n.Needs)
	}

	// More ticks on the same day must not decay again.
	e.clk.Advance(3600)
	if n.Needs.Hunger != 90 {
		t.Fatalf("decay applied twice within one day: %+v", n.Needs)
	}
}

func TestEngine_WorkingNPCResolvesShifts(t *testing.T) {
	e, npcs, work := newTestEngine(t)
	sched := &entity.Schedule{
		Home:          &entity.Location{X: 1, Y: 1},
		Work:          &entity.Location{X: 5, Y: 5},
		WorkStartHour: 8,
		WorkEndHour:   17,
	}
	npcs.Create(entity.Seed{Name: "Bera", X: 1, Y: 1, Schedule: sched})

	// 07:00 -> 09:00: first tick inside work hours travels, second works.
	e.clk.Advance(2 * 3600)
	e.clk.Advance(60)
	if work.shifts != 1 {
		t.Fatalf("expected 1 shift, got %d", work.shifts)
	}
}

func TestEngine_PlayerDeathNotifiedOnce(t *testing.T) {
	e, _, _ := newTestEngine(t)
	deaths := 0
	e.onPlayerDeath = func() { deaths++ }
	e.player.UpdateAttributes(map[string]any{"hunger": 0.0, "thirst": 0.0, "health": 4.0})

	e.clk.Advance(17 * 3600) // day 2: health 0, dead
	e.clk.Advance(24 * 3600) // day 3: still dead
	if deaths != 1 {
		t.Fatalf("expected exactly one death notification, got %d", deaths)
	}
	if !e.Snapshot().Player.Dead {
		t.Fatalf("snapshot should flag the player dead")
	}
}

func TestEngine_PauseStopsTime(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.Pause()
	before := e.CurrentTime()
	e.pulse()
	if e.CurrentTime() != before {
		t.Fatalf("time advanced while paused")
	}
	e.Resume()
	e.pulse()
	if e.CurrentTime() == before {
		t.Fatalf("time did not advance after resume")
	}
}

func TestEngine_SleepFastForward(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.StartSleep()
	e.pulse()
	// One 250ms pulse at 100x advances 25 game minutes.
	got := e.CurrentTime()
	if got.Hour != 7 || got.Minute != 25 {
		t.Fatalf("expected 07:25, got %+v", got)
	}
}

func TestEngine_RunGuard(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- e.Run(ctx) }()

	// Give the first Run a moment to claim the engine.
	time.Sleep(20 * time.Millisecond)
	if err := e.Run(ctx); err == nil {
		t.Fatalf("second Run must be rejected while the first is live")
	}
	cancel()
	if err := <-errs; err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEngine_AttributeReads(t *testing.T) {
	e, npcs, _ := newTestEngine(t)
	n, _ := npcs.Create(entity.Seed{Name: "Bera", X: 3, Y: 4})

	if v, ok := e.PlayerAttribute("name"); !ok || v.(string) != "Aldric" {
		t.Fatalf("player attribute read failed: %v %v", v, ok)
	}
	if v, ok := e.NPCAttribute(n.ID, "x"); !ok || v.(int) != 3 {
		t.Fatalf("npc attribute read failed: %v %v", v, ok)
	}
	ids := e.ActiveNPCIDs()
	if len(ids) != 1 || ids[0] != n.ID {
		t.Fatalf("active ids mismatch: %v", ids)
	}
}
