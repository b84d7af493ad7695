// Package worldmap holds the tile grid. Movement is direct teleport-if-walkable;
// there is no pathfinding.
package worldmap

import (
	"fmt"

	"wyrnlands.game/internal/persistence/gamedb"
)

type Tile struct {
	X, Y       int
	Type       string
	Walkable   bool
	Buildable  bool
	BuildingID int64
}

// Grid is the in-memory copy of the tiles table. Loaded once at session start;
// tile mutations write through to the store.
type Grid struct {
	db    *gamedb.Store
	tiles map[[2]int]Tile
}

func Load(db *gamedb.Store) (*Grid, error) {
	rows, err := db.All(`SELECT x, y, tile_type, walkable, buildable, building_id FROM tiles`)
	if err != nil {
		return nil, fmt.Errorf("load tiles: %w", err)
	}
	g := &Grid{db: db, tiles: make(map[[2]int]Tile, len(rows))}
	for _, row := range rows {
		t := Tile{
			X:          gamedb.AsInt(row["x"]),
			Y:          gamedb.AsInt(row["y"]),
			Type:       gamedb.AsString(row["tile_type"]),
			Walkable:   gamedb.AsBool(row["walkable"]),
			Buildable:  gamedb.AsBool(row["buildable"]),
			BuildingID: gamedb.AsInt64(row["building_id"]),
		}
		g.tiles[[2]int{t.X, t.Y}] = t
	}
	return g, nil
}

// Seed fills an empty tiles table with a walkable width x height field.
// No-op when tiles already exist.
func Seed(db *gamedb.Store, width, height int) error {
	row, err := db.Get(`SELECT COUNT(*) AS n FROM tiles`)
	if err != nil {
		return err
	}
	if row != nil && gamedb.AsInt(row["n"]) > 0 {
		return nil
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if _, err := db.Run(
				`INSERT INTO tiles (x, y, tile_type, walkable, buildable) VALUES (?, ?, 'GRASS', 1, 1)`,
				x, y,
			); err != nil {
				return fmt.Errorf("seed tile %d,%d: %w", x, y, err)
			}
		}
	}
	return nil
}

func (g *Grid) IsWalkable(x, y int) bool {
	t, ok := g.tiles[[2]int{x, y}]
	return ok && t.Walkable
}

func (g *Grid) GetTile(x, y int) (Tile, bool) {
	t, ok := g.tiles[[2]int{x, y}]
	return t, ok
}

// SetBuilding stamps a building onto a tile and makes it non-buildable.
func (g *Grid) SetBuilding(x, y int, buildingID int64) bool {
	t, ok := g.tiles[[2]int{x, y}]
	if !ok || !t.Buildable {
		return false
	}
	res, err := g.db.Run(
		`UPDATE tiles SET building_id=?, buildable=0 WHERE x=? AND y=?`, buildingID, x, y,
	)
	if err != nil || res.Changes == 0 {
		return false
	}
	t.BuildingID = buildingID
	t.Buildable = false
	g.tiles[[2]int{x, y}] = t
	return true
}
