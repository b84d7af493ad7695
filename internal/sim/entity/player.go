package entity

import (
	"fmt"
	"log"

	"wyrnlands.game/internal/persistence/gamedb"
)

// PlayerID keys the player in owner-scoped tables (skills, funds, inventories).
const PlayerID = "1"

// PlayerStore owns the session's single player record.
type PlayerStore struct {
	as attrStore
	st *State
}

func LoadPlayer(db *gamedb.Store, logger *log.Logger) (*PlayerStore, error) {
	row, err := db.Get(`SELECT * FROM player WHERE id=1`)
	if err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("load player: no player row")
	}
	st := stateFromRow(row)
	st.ID = PlayerID
	return &PlayerStore{
		as: attrStore{db: db, logger: logger, table: "player", skip: map[string]bool{"age": true}},
		st: st,
	}, nil
}

// CreatePlayer inserts the singleton player row. No-op when one exists.
func CreatePlayer(db *gamedb.Store, name string, x, y int, householdID string) error {
	row, err := db.Get(`SELECT id FROM player WHERE id=1`)
	if err != nil {
		return err
	}
	if row != nil {
		return nil
	}
	_, err = db.Run(
		`INSERT INTO player (id, name, current_tile_x, current_tile_y, household_id) VALUES (1, ?, ?, ?, ?)`,
		name, x, y, householdID,
	)
	return err
}

// UpdateAttributes applies a partial update optimistically and reverts it if
// the durable write fails.
func (p *PlayerStore) UpdateAttributes(updates map[string]any) bool {
	return p.as.update(p.st, 1, updates)
}

func (p *PlayerStore) State() *State { return p.st }

// Attribute reads a single field by name, for the UI layer.
func (p *PlayerStore) Attribute(name string) (any, bool) {
	return getAttr(p.st, name)
}
