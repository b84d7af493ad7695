package entity

import (
	"path/filepath"
	"testing"

	"wyrnlands.game/internal/persistence/gamedb"
)

func openTestDB(t *testing.T) *gamedb.Store {
	t.Helper()
	db, err := gamedb.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func loadTestPlayer(t *testing.T, db *gamedb.Store) *PlayerStore {
	t.Helper()
	if err := CreatePlayer(db, "Aldric", 3, 4, "h1"); err != nil {
		t.Fatalf("create player: %v", err)
	}
	p, err := LoadPlayer(db, nil)
	if err != nil {
		t.Fatalf("load player: %v", err)
	}
	return p
}

func TestPlayer_UpdatePersistsAndReads(t *testing.T) {
	db := openTestDB(t)
	p := loadTestPlayer(t, db)

	if !p.UpdateAttributes(map[string]any{"x": 7, "y": 8, "currentState": ActivityTraveling}) {
		t.Fatalf("update should succeed")
	}
	if p.State().X != 7 || p.State().Y != 8 || p.State().Activity != ActivityTraveling {
		t.Fatalf("in-memory state not applied: %+v", p.State())
	}

	row, err := db.Get(`SELECT current_tile_x, current_tile_y, current_activity FROM player WHERE id=1`)
	if err != nil || row == nil {
		t.Fatalf("read back: %v", err)
	}
	if gamedb.AsInt(row["current_tile_x"]) != 7 || gamedb.AsString(row["current_activity"]) != "TRAVELING" {
		t.Fatalf("persisted row mismatch: %v", row)
	}
}

func TestPlayer_OptimisticRevertOnZeroRows(t *testing.T) {
	db := openTestDB(t)
	p := loadTestPlayer(t, db)
	p.UpdateAttributes(map[string]any{"health": 80.0})

	// Yank the row out from under the store: the next write touches zero rows.
	if _, err := db.Run(`DELETE FROM player WHERE id=1`); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if p.UpdateAttributes(map[string]any{"health": 50.0}) {
		t.Fatalf("update should fail when persistence touches no rows")
	}
	if got := p.State().Needs.Health; got != 80 {
		t.Fatalf("in-memory health must revert to 80, got %v", got)
	}
}

func TestPlayer_MemoryOnlyAttribute(t *testing.T) {
	db := openTestDB(t)
	p := loadTestPlayer(t, db)

	// The player table has no age column; the value sticks in-memory only and
	// the call still succeeds.
	if !p.UpdateAttributes(map[string]any{"age": 31}) {
		t.Fatalf("memory-only update should report success")
	}
	if p.State().Age != 31 {
		t.Fatalf("age not applied in-memory")
	}
}

func TestPlayer_UnknownKeySkipped(t *testing.T) {
	db := openTestDB(t)
	p := loadTestPlayer(t, db)
	if !p.UpdateAttributes(map[string]any{"favoriteColor": "blue", "x": 9}) {
		t.Fatalf("update with a stray key should still persist the known ones")
	}
	if p.State().X != 9 {
		t.Fatalf("known key not applied")
	}
}

func TestPlayer_Attribute(t *testing.T) {
	db := openTestDB(t)
	p := loadTestPlayer(t, db)
	v, ok := p.Attribute("householdId")
	if !ok || v.(string) != "h1" {
		t.Fatalf("attribute read failed: %v %v", v, ok)
	}
	if _, ok := p.Attribute("nope"); ok {
		t.Fatalf("unknown attribute must not resolve")
	}
}

func TestNPC_CreateLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	s, err := LoadNPCs(db, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sched := &Schedule{
		Home:          &Location{X: 1, Y: 1},
		Work:          &Location{X: 5, Y: 5},
		WorkStartHour: 8,
		WorkEndHour:   17,
	}
	n, err := s.Create(Seed{
		Name: "Bera", Age: 26, HouseholdID: "h2", X: 1, Y: 1,
		Job:      Assignment{JobType: "farmer", EmployerID: "b1", EmployerType: "BUSINESS"},
		Schedule: sched,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	reloaded, err := LoadNPCs(db, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, ok := reloaded.Get(n.ID)
	if !ok {
		t.Fatalf("npc missing after reload")
	}
	if got.Name != "Bera" || got.Job.JobType != "farmer" || got.Schedule == nil {
		t.Fatalf("reloaded npc mismatch: %+v", got)
	}
	if got.Schedule.Work == nil || got.Schedule.Work.X != 5 || got.Schedule.WorkEndHour != 17 {
		t.Fatalf("schedule mismatch: %+v", got.Schedule)
	}
}

func TestNPC_StableOrder(t *testing.T) {
	db := openTestDB(t)
	s, _ := LoadNPCs(db, nil)
	a, _ := s.Create(Seed{Name: "a"})
	b, _ := s.Create(Seed{Name: "b"})
	c, _ := s.Create(Seed{Name: "c"})
	ids := s.ActiveIDs()
	if len(ids) != 3 || ids[0] != a.ID || ids[1] != b.ID || ids[2] != c.ID {
		t.Fatalf("order not stable: %v", ids)
	}
}

func TestNPC_TargetClearing(t *testing.T) {
	db := openTestDB(t)
	s, _ := LoadNPCs(db, nil)
	n, _ := s.Create(Seed{Name: "a", X: 0, Y: 0})

	if !s.UpdateAttributes(n.ID, map[string]any{"targetX": 5, "targetY": 6}) {
		t.Fatalf("set target failed")
	}
	if !n.HasTarget || n.TargetX != 5 {
		t.Fatalf("target not applied: %+v", n)
	}
	if !s.UpdateAttributes(n.ID, map[string]any{"targetX": nil, "targetY": nil}) {
		t.Fatalf("clear target failed")
	}
	if n.HasTarget {
		t.Fatalf("target should be cleared")
	}
	row, _ := db.Get(`SELECT target_x FROM npcs WHERE id=?`, n.ID)
	if row["target_x"] != nil {
		t.Fatalf("target_x should persist as NULL")
	}
}

func TestNPC_RetireSoftDeletes(t *testing.T) {
	db := openTestDB(t)
	s, _ := LoadNPCs(db, nil)
	n, _ := s.Create(Seed{Name: "doomed"})
	s.Retire(n.ID)

	if _, ok := s.Get(n.ID); ok {
		t.Fatalf("retired npc still in index")
	}
	if s.Count() != 0 {
		t.Fatalf("count should drop")
	}
	row, _ := db.Get(`SELECT is_alive FROM npcs WHERE id=?`, n.ID)
	if row == nil {
		t.Fatalf("row must survive retirement")
	}
	if gamedb.AsBool(row["is_alive"]) {
		t.Fatalf("row should be marked dead")
	}
	reloaded, _ := LoadNPCs(db, nil)
	if reloaded.Count() != 0 {
		t.Fatalf("dead npc must not reload")
	}
}
