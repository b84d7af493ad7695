package entity

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"wyrnlands.game/internal/persistence/gamedb"
)

// NPCStore indexes every live NPC. Iteration order is load/insertion order
// and stays stable across ticks.
type NPCStore struct {
	as    attrStore
	byID  map[string]*State
	order []string
}

func npcAttrStore(db *gamedb.Store, logger *log.Logger) attrStore {
	return attrStore{db: db, logger: logger, table: "npcs", skip: map[string]bool{"currentMountId": true}}
}

func LoadNPCs(db *gamedb.Store, logger *log.Logger) (*NPCStore, error) {
	rows, err := db.All(`SELECT * FROM npcs WHERE is_alive=1 ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("load npcs: %w", err)
	}
	s := &NPCStore{as: npcAttrStore(db, logger), byID: make(map[string]*State, len(rows))}
	for _, row := range rows {
		st := stateFromRow(row)
		st.ID = gamedb.AsString(row["id"])
		st.Schedule = scheduleFromRow(row)
		s.byID[st.ID] = st
		s.order = append(s.order, st.ID)
	}
	return s, nil
}

// Seed describes a new NPC; zero-value locations mean "no schedule entry".
type Seed struct {
	Name        string
	Age         int
	HouseholdID string
	X, Y        int
	TitleID     string
	Job         Assignment
	Schedule    *Schedule
}

// Create inserts a new NPC row and adds it to the live index.
func (s *NPCStore) Create(seed Seed) (*State, error) {
	id := uuid.NewString()

	var homeX, homeY, workX, workY any
	var startHour, endHour any
	if seed.Schedule != nil {
		if seed.Schedule.Home != nil {
			homeX, homeY = seed.Schedule.Home.X, seed.Schedule.Home.Y
		}
		if seed.Schedule.Work != nil {
			workX, workY = seed.Schedule.Work.X, seed.Schedule.Work.Y
		}
		startHour, endHour = seed.Schedule.WorkStartHour, seed.Schedule.WorkEndHour
	}

	_, err := s.as.db.Run(
		`INSERT INTO npcs (id, name, age, household_id, current_tile_x, current_tile_y,
			title_id, job_type, employer_id, employer_type,
			home_x, home_y, work_x, work_y, work_start_hour, work_end_hour)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, seed.Name, seed.Age, nullable(seed.HouseholdID), seed.X, seed.Y,
		nullable(seed.TitleID), nullable(seed.Job.JobType), nullable(seed.Job.EmployerID), nullable(seed.Job.EmployerType),
		homeX, homeY, workX, workY, startHour, endHour,
	)
	if err != nil {
		return nil, fmt.Errorf("create npc: %w", err)
	}

	st := &State{
		ID:          id,
		Name:        seed.Name,
		Age:         seed.Age,
		HouseholdID: seed.HouseholdID,
		X:           seed.X,
		Y:           seed.Y,
		Activity:    ActivityIdle,
		TitleID:     seed.TitleID,
		Job:         seed.Job,
		Schedule:    seed.Schedule,
	}
	st.Needs.Hunger = 100
	st.Needs.Thirst = 100
	st.Needs.Health = 100

	s.byID[id] = st
	s.order = append(s.order, id)
	return st, nil
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func (s *NPCStore) Get(id string) (*State, bool) {
	st, ok := s.byID[id]
	return st, ok
}

// ActiveIDs returns live NPC ids in stable iteration order.
func (s *NPCStore) ActiveIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Active returns live NPC records in stable iteration order.
func (s *NPCStore) Active() []*State {
	out := make([]*State, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *NPCStore) Count() int { return len(s.order) }

func (s *NPCStore) UpdateAttributes(id string, updates map[string]any) bool {
	st, ok := s.byID[id]
	if !ok {
		s.as.warnf("update for unknown npc %s", id)
		return false
	}
	return s.as.update(st, id, updates)
}

// Attribute reads a single field of one NPC by name, for the UI layer.
func (s *NPCStore) Attribute(id, name string) (any, bool) {
	st, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return getAttr(st, name)
}

// Retire drops a dead NPC from the live index. The row keeps its last-known
// state; the liveness flag flips best-effort so a reload does not resurrect.
func (s *NPCStore) Retire(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if _, err := s.as.db.Run(`UPDATE npcs SET is_alive=0 WHERE id=?`, id); err != nil {
		s.as.warnf("mark npc %s dead: %v", id, err)
	}
}
