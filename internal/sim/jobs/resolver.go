package jobs

import (
	"log"
	"math"

	"wyrnlands.game/internal/sim/entity"
	"wyrnlands.game/internal/sim/skills"
)

// BaseXPPerShift is granted per shift regardless of payment outcome.
const BaseXPPerShift = 1.0

// WorkerInfo is what the resolver needs to know about an entity.
type WorkerInfo struct {
	Assignment  entity.Assignment
	HouseholdID string
}

type Directory interface {
	WorkerInfo(entityType, entityID string) (WorkerInfo, bool)
}

type FundsLedger interface {
	ProcessTransaction(payerType, payerID, payeeType, payeeID string, amount int64, reason string) bool
}

type ItemSink interface {
	AddItem(ownerType, ownerID, itemName string, quantity int) bool
}

type SkillLedger interface {
	GetSkill(ownerType, ownerID, skillName string) skills.Record
	AddXP(ownerType, ownerID, skillName string, xp float64) (leveledUp bool, newLevel int)
}

// Resolver resolves one work shift per call. StrictPayroll switches the
// default best-effort policy (a failed wage transfer still produces goods and
// XP) to all-or-nothing.
type Resolver struct {
	Catalog *Catalog
	Dir     Directory
	Funds   FundsLedger
	Items   ItemSink
	Skills  SkillLedger
	Logger  *log.Logger

	StrictPayroll bool

	// OnLevelUp, when set, surfaces level-up notifications to the UI layer.
	OnLevelUp func(entityType, entityID, skillName string, newLevel int)
}

// ProcessWorkShift computes wage and output for one shift and applies the
// side effects. Lookup failures abort with a warning and no side effects; a
// wage transfer failure is partial by default (see StrictPayroll).
func (r *Resolver) ProcessWorkShift(entityType, entityID string) {
	info, ok := r.Dir.WorkerInfo(entityType, entityID)
	if !ok {
		r.warnf("shift for unknown entity %s/%s", entityType, entityID)
		return
	}
	if info.Assignment.JobType == "" {
		return
	}
	def, ok := r.Catalog.ByID[info.Assignment.JobType]
	if !ok {
		r.warnf("shift for %s/%s: unknown job type %q", entityType, entityID, info.Assignment.JobType)
		return
	}

	level := r.Skills.GetSkill(entityType, entityID, def.Skill).Level
	mods := skills.CalculateModifiers(level)

	// Wage rounds to nearest; output floors at deposit. The asymmetry is part
	// of the game balance.
	wage := int64(math.Round(float64(def.BaseWage) * mods.Wage))
	output := int(math.Floor(def.OutputQuantity * mods.Output))

	employed := info.Assignment.EmployerID != "" && info.Assignment.EmployerType != ""
	if employed {
		if wage > 0 {
			if info.HouseholdID == "" {
				r.warnf("shift for %s/%s: no household to pay wages into", entityType, entityID)
			} else if !r.Funds.ProcessTransaction(
				info.Assignment.EmployerType, info.Assignment.EmployerID,
				"HOUSEHOLD", info.HouseholdID, wage, "wage:"+def.ID,
			) {
				r.warnf("shift for %s/%s: wage transfer of %d failed", entityType, entityID, wage)
				if r.StrictPayroll {
					return
				}
			}
		}
		if output > 0 {
			r.Items.AddItem(info.Assignment.EmployerType, info.Assignment.EmployerID, def.OutputItem, output)
		}
	} else {
		// Self-employed gathering: goods go to the entity's own household.
		if info.HouseholdID == "" {
			r.warnf("shift for %s/%s: no household for gathered goods", entityType, entityID)
		} else if output > 0 {
			r.Items.AddItem("HOUSEHOLD", info.HouseholdID, def.OutputItem, output)
		}
	}

	leveled, newLevel := r.Skills.AddXP(entityType, entityID, def.Skill, BaseXPPerShift)
	if leveled && r.OnLevelUp != nil {
		r.OnLevelUp(entityType, entityID, def.Skill, newLevel)
	}
}

func (r *Resolver) warnf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf("jobs: "+format, args...)
	}
}
