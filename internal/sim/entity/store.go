package entity

import (
	"log"
	"sort"
	"strings"

	"wyrnlands.game/internal/persistence/gamedb"
)

// columnsByKey maps attribute keys to store columns. Keys absent here (or in
// a table's skip set) stay in-memory only.
var columnsByKey = map[string]string{
	"name":           "name",
	"age":            "age",
	"householdId":    "household_id",
	"x":              "current_tile_x",
	"y":              "current_tile_y",
	"currentState":   "current_activity",
	"targetX":        "target_x",
	"targetY":        "target_y",
	"hunger":         "hunger",
	"thirst":         "thirst",
	"health":         "health",
	"titleId":        "title_id",
	"jobType":        "job_type",
	"employerId":     "employer_id",
	"employerType":   "employer_type",
	"currentMountId": "current_mount_id",
}

type attrStore struct {
	db     *gamedb.Store
	logger *log.Logger
	table  string
	skip   map[string]bool // keys with no column on this table
}

// update is the optimistic write at the heart of the store: snapshot, apply
// in-memory, persist, revert on failure. Returns false iff the durable write
// failed (zero rows or error), in which case the in-memory record is restored
// to its pre-call values.
func (as *attrStore) update(st *State, idArg any, updates map[string]any) bool {
	if st == nil || len(updates) == 0 {
		return true
	}

	snapshot := make(map[string]any, len(updates))
	keys := make([]string, 0, len(updates))
	for k := range updates {
		cur, ok := getAttr(st, k)
		if !ok {
			as.warnf("unknown attribute %q on %s; skipped", k, as.table)
			continue
		}
		snapshot[k] = cur
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		setAttr(st, k, updates[k])
	}

	var sets []string
	var args []any
	for _, k := range keys {
		col, mapped := columnsByKey[k]
		if !mapped || as.skip[k] {
			as.warnf("attribute %q has no column on %s; kept in-memory only", k, as.table)
			continue
		}
		v, _ := getAttr(st, k)
		sets = append(sets, col+"=?")
		args = append(args, dbValue(v))
	}
	if len(sets) == 0 {
		// Nothing to persist; the in-memory apply stands.
		return true
	}

	args = append(args, idArg)
	res, err := as.db.Run(`UPDATE `+as.table+` SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil || res.Changes == 0 {
		for _, k := range keys {
			setAttr(st, k, snapshot[k])
		}
		if err != nil {
			as.warnf("persist %s %v failed, reverted: %v", as.table, idArg, err)
		} else {
			as.warnf("persist %s %v touched no rows, reverted", as.table, idArg)
		}
		return false
	}
	return true
}

func (as *attrStore) warnf(format string, args ...any) {
	if as.logger != nil {
		as.logger.Printf("entity: "+format, args...)
	}
}

func dbValue(v any) any {
	if a, ok := v.(Activity); ok {
		return string(a)
	}
	return v
}

func stateFromRow(row map[string]any) *State {
	st := &State{
		Name:        gamedb.AsString(row["name"]),
		Age:         gamedb.AsInt(row["age"]),
		HouseholdID: gamedb.AsString(row["household_id"]),
		X:           gamedb.AsInt(row["current_tile_x"]),
		Y:           gamedb.AsInt(row["current_tile_y"]),
		Activity:    Activity(gamedb.AsString(row["current_activity"])),
		TitleID:     gamedb.AsString(row["title_id"]),
		Job: Assignment{
			JobType:      gamedb.AsString(row["job_type"]),
			EmployerID:   gamedb.AsString(row["employer_id"]),
			EmployerType: gamedb.AsString(row["employer_type"]),
		},
		CurrentMountID: gamedb.AsString(row["current_mount_id"]),
	}
	st.Needs.Hunger = gamedb.AsFloat(row["hunger"])
	st.Needs.Thirst = gamedb.AsFloat(row["thirst"])
	st.Needs.Health = gamedb.AsFloat(row["health"])
	if row["target_x"] != nil && row["target_y"] != nil {
		st.TargetX = gamedb.AsInt(row["target_x"])
		st.TargetY = gamedb.AsInt(row["target_y"])
		st.HasTarget = true
	}
	if st.Activity == "" {
		st.Activity = ActivityIdle
	}
	return st
}

func scheduleFromRow(row map[string]any) *Schedule {
	sched := &Schedule{
		WorkStartHour: gamedb.AsInt(row["work_start_hour"]),
		WorkEndHour:   gamedb.AsInt(row["work_end_hour"]),
	}
	if row["home_x"] != nil && row["home_y"] != nil {
		sched.Home = &Location{X: gamedb.AsInt(row["home_x"]), Y: gamedb.AsInt(row["home_y"])}
	}
	if row["work_x"] != nil && row["work_y"] != nil {
		sched.Work = &Location{X: gamedb.AsInt(row["work_x"]), Y: gamedb.AsInt(row["work_y"])}
	}
	if sched.Home == nil && sched.Work == nil {
		return nil
	}
	return sched
}
