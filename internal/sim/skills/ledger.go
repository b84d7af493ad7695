package skills

import (
	"log"

	"wyrnlands.game/internal/persistence/gamedb"
)

// Ledger is the durable view of skill records. The algorithm lives in the
// pure functions next door; the ledger only loads and upserts rows.
type Ledger struct {
	db     *gamedb.Store
	logger *log.Logger
}

func NewLedger(db *gamedb.Store, logger *log.Logger) *Ledger {
	return &Ledger{db: db, logger: logger}
}

// GetSkill returns the persisted record, or the level-1 default when no row
// exists. Absence is not an error.
func (l *Ledger) GetSkill(ownerType, ownerID, skillName string) Record {
	row, err := l.db.Get(
		`SELECT level, xp FROM skills WHERE owner_type=? AND owner_id=? AND skill_name=?`,
		ownerType, ownerID, skillName,
	)
	if err != nil {
		if l.logger != nil {
			l.logger.Printf("skills: get %s/%s/%s: %v", ownerType, ownerID, skillName, err)
		}
		return DefaultRecord()
	}
	if row == nil {
		return DefaultRecord()
	}
	return Record{Level: gamedb.AsInt(row["level"]), XP: gamedb.AsFloat(row["xp"])}
}

// AddXP grants XP, runs the leveling loop and upserts the result. Returns
// whether a level change occurred and the resulting level. A non-positive
// grant, or a grant at max level, is a no-op.
func (l *Ledger) AddXP(ownerType, ownerID, skillName string, xp float64) (leveledUp bool, newLevel int) {
	cur := l.GetSkill(ownerType, ownerID, skillName)
	if xp <= 0 || cur.Level >= MaxLevel {
		return false, cur.Level
	}

	next := ApplyXP(cur, xp)
	_, err := l.db.Run(
		`INSERT INTO skills (owner_type, owner_id, skill_name, level, xp) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(owner_type, owner_id, skill_name) DO UPDATE SET level=excluded.level, xp=excluded.xp`,
		ownerType, ownerID, skillName, next.Level, next.XP,
	)
	if err != nil && l.logger != nil {
		l.logger.Printf("skills: persist %s/%s/%s: %v", ownerType, ownerID, skillName, err)
	}
	return next.Level != cur.Level, next.Level
}
