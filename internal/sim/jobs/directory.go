package jobs

import "wyrnlands.game/internal/sim/entity"

// Entity type names used across owner-scoped tables and the resolver.
const (
	EntityPlayer = "PLAYER"
	EntityNPC    = "NPC"
)

// StoreDirectory resolves worker lookups against the live entity stores.
type StoreDirectory struct {
	Player *entity.PlayerStore
	NPCs   *entity.NPCStore
}

func (d StoreDirectory) WorkerInfo(entityType, entityID string) (WorkerInfo, bool) {
	switch entityType {
	case EntityPlayer:
		if d.Player == nil {
			return WorkerInfo{}, false
		}
		st := d.Player.State()
		return WorkerInfo{Assignment: st.Job, HouseholdID: st.HouseholdID}, true
	case EntityNPC:
		if d.NPCs == nil {
			return WorkerInfo{}, false
		}
		st, ok := d.NPCs.Get(entityID)
		if !ok {
			return WorkerInfo{}, false
		}
		return WorkerInfo{Assignment: st.Job, HouseholdID: st.HouseholdID}, true
	}
	return WorkerInfo{}, false
}
