// Package entity holds the canonical runtime state for the player and every
// NPC, mirrored to the store with an optimistic-update/revert discipline:
// in-memory state never claims a change that failed to persist.
package entity

import "wyrnlands.game/internal/sim/survival"

type Activity string

const (
	ActivityIdle      Activity = "IDLE"
	ActivityWorking   Activity = "WORKING"
	ActivityEating    Activity = "EATING"
	ActivitySleeping  Activity = "SLEEPING"
	ActivityTraveling Activity = "TRAVELING"
)

type Location struct {
	X, Y int
}

// Schedule is an NPC's static daily plan. Home or Work may be nil.
type Schedule struct {
	Home          *Location
	Work          *Location
	WorkStartHour int
	WorkEndHour   int
}

// Assignment is the job slot embedded in an entity record. JobType "" means
// unemployed; EmployerID "" means self-employed gathering.
type Assignment struct {
	JobType      string
	EmployerID   string
	EmployerType string
}

// State is the shared runtime shape for player and NPC. The player leaves
// Age/Schedule unused and carries CurrentMountID; NPCs are the reverse.
type State struct {
	ID          string
	Name        string
	Age         int
	HouseholdID string

	X, Y      int
	Activity  Activity
	TargetX   int
	TargetY   int
	HasTarget bool

	Needs survival.Needs

	TitleID  string
	Job      Assignment
	Schedule *Schedule

	CurrentMountID string
}

// AtTarget reports whether the entity stands on its travel target.
func (s *State) AtTarget() bool {
	return s.HasTarget && s.X == s.TargetX && s.Y == s.TargetY
}

// At reports whether the entity stands on the given location.
func (s *State) At(loc *Location) bool {
	return loc != nil && s.X == loc.X && s.Y == loc.Y
}
