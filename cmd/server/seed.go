package main

import (
	"fmt"
	"log"

	"wyrnlands.game/internal/persistence/gamedb"
	"wyrnlands.game/internal/sim/economy"
	"wyrnlands.game/internal/sim/entity"
	"wyrnlands.game/internal/sim/tuning"
	"wyrnlands.game/internal/sim/worldmap"
)

// starterNPCs populate a fresh world: a couple of employed villagers and one
// self-employed forager.
type starterNPC struct {
	name      string
	age       int
	household string
	home      entity.Location
	work      entity.Location
	job       entity.Assignment
}

var starterNPCs = []starterNPC{
	{
		name: "Bera", age: 26, household: "h2",
		home: entity.Location{X: 10, Y: 10}, work: entity.Location{X: 20, Y: 12},
		job: entity.Assignment{JobType: "farmer", EmployerID: "b1", EmployerType: "BUSINESS"},
	},
	{
		name: "Cedric", age: 34, household: "h3",
		home: entity.Location{X: 12, Y: 10}, work: entity.Location{X: 25, Y: 8},
		job: entity.Assignment{JobType: "woodcutter", EmployerID: "b2", EmployerType: "BUSINESS"},
	},
	{
		name: "Dunna", age: 41, household: "h4",
		home: entity.Location{X: 14, Y: 10}, work: entity.Location{X: 18, Y: 20},
		job: entity.Assignment{JobType: "forager"},
	},
}

// seedWorld fills an empty store with the starting map, player, funds and
// villagers. Safe to call on every start; a seeded world is left alone.
func seedWorld(db *gamedb.Store, tun tuning.Tuning, playerName string, logger *log.Logger) error {
	row, err := db.Get(`SELECT value FROM meta WHERE key='seeded'`)
	if err != nil {
		return err
	}
	if row != nil {
		return nil
	}

	if err := worldmap.Seed(db, tun.MapWidth, tun.MapHeight); err != nil {
		return err
	}
	if err := entity.CreatePlayer(db, playerName, 5, 5, "h1"); err != nil {
		return err
	}

	funds := economy.NewLedger(db, logger)
	for _, h := range []string{"h1", "h2", "h3", "h4"} {
		funds.Deposit("HOUSEHOLD", h, tun.StartingHouseholdCopper)
	}
	for _, b := range []string{"b1", "b2"} {
		funds.Deposit("BUSINESS", b, tun.StartingBusinessCopper)
	}

	npcs, err := entity.LoadNPCs(db, logger)
	if err != nil {
		return err
	}
	for _, s := range starterNPCs {
		home := s.home
		work := s.work
		sched := &entity.Schedule{
			Home:          &home,
			Work:          &work,
			WorkStartHour: 8,
			WorkEndHour:   17,
		}
		if _, err := npcs.Create(entity.Seed{
			Name:        s.name,
			Age:         s.age,
			HouseholdID: s.household,
			X:           home.X,
			Y:           home.Y,
			Job:         s.job,
			Schedule:    sched,
		}); err != nil {
			return fmt.Errorf("seed npc %s: %w", s.name, err)
		}
	}

	if _, err := db.Run(`INSERT INTO meta (key, value) VALUES ('seeded', '1')`); err != nil {
		return err
	}
	logger.Printf("seeded fresh world: %dx%d map, %d npcs", tun.MapWidth, tun.MapHeight, len(starterNPCs))
	return nil
}
