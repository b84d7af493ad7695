package worldmap

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

func TestSeedAndLoad(t *testing.T) {
	db := openTestDB(t)
	if err := Seed(db, 4, 3); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Second seed on a populated table is a no-op.
	if err := Seed(db, 9, 9); err != nil {
		t.Fatalf("re-seed: %v", err)
	}

	g, err := Load(db)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !g.IsWalkable(0, 0) || !g.IsWalkable(3, 2) {
		t.Fatalf("seeded tiles should be walkable")
	}
	if g.IsWalkable(4, 0) || g.IsWalkable(-1, 0) {
		t.Fatalf("out-of-grid tiles are not walkable")
	}
	tile, ok := g.GetTile(1, 1)
	if !ok || tile.Type != "GRASS" || !tile.Buildable {
		t.Fatalf("unexpected tile: %+v ok=%v", tile, ok)
	}
}

func TestSetBuilding(t *testing.T) {
	db := openTestDB(t)
	if err := Seed(db, 2, 2); err != nil {
		t.Fatalf("seed: %v", err)
	}
	g, _ := Load(db)
	if !g.SetBuilding(1, 1, 7) {
		t.Fatalf("set building failed")
	}
	tile, _ := g.GetTile(1, 1)
	if tile.BuildingID != 7 || tile.Buildable {
		t.Fatalf("tile not stamped: %+v", tile)
	}
	// Occupied tiles refuse a second building.
	if g.SetBuilding(1, 1, 8) {
		t.Fatalf("second building on same tile must fail")
	}
	row, _ := db.Get(`SELECT building_id FROM tiles WHERE x=1 AND y=1`)
	if gamedb.AsInt64(row["building_id"]) != 7 {
		t.Fatalf("building not persisted")
	}
}
