// Package engine is the tick orchestrator: it owns the scheduler that drives
// the clock, applies daily survival effects (player first, then every NPC in
// stable order) on day rollover, and runs the NPC behavior driver every tick.
package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"wyrnlands.game/internal/sim/clock"
	"wyrnlands.game/internal/sim/entity"
	"wyrnlands.game/internal/sim/npc"
	"wyrnlands.game/internal/sim/survival"
	"wyrnlands.game/internal/sim/worldmap"
)

// gameSecondsPerRealSecond makes one real second equal one game minute at 1x
// speed. Time-based content depends on this exact ratio.
const gameSecondsPerRealSecond = 60

type TickLogEntry struct {
	Day        int   `json:"day"`
	Hour       int   `json:"hour"`
	Minute     int   `json:"minute"`
	SpeedScale int   `json:"speed_scale"`
	Sleeping   bool  `json:"sleeping"`
	NPCs       int   `json:"npcs"`
	WallMs     int64 `json:"wall_ms"`
}

type AuditEntry struct {
	Kind       string `json:"kind"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Name       string `json:"name,omitempty"`
	Day        int    `json:"day"`
	Detail     string `json:"detail,omitempty"`
}

// Optional sinks (may be nil). Implemented in internal/persistence/log.
type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

type AuditLogger interface {
	WriteAudit(entry AuditEntry) error
}

type Config struct {
	TickInterval time.Duration
}

// Engine wires clock, stores and driver together. All simulation state is
// mutated only under mu, on the Run goroutine; readers get copies.
type Engine struct {
	cfg    Config
	logger *log.Logger

	mu     sync.Mutex
	clk    *clock.Clock
	player *entity.PlayerStore
	npcs   *entity.NPCStore
	driver *npc.Driver

	lastDay    int
	playerDead bool

	tickLog TickLogger
	audit   AuditLogger

	// onTick fans out to the UI layer after each advance. It must not block;
	// the ws transport drops frames instead of stalling the scheduler.
	onTick func(Snapshot)

	onPlayerDeath func()

	running atomic.Bool
	stop    chan struct{}
}

type Deps struct {
	Player *entity.PlayerStore
	NPCs   *entity.NPCStore
	Grid   *worldmap.Grid
	Work   npc.WorkResolver
	Logger *log.Logger

	TickLog TickLogger
	Audit   AuditLogger

	OnTick        func(Snapshot)
	OnPlayerDeath func()
}

func New(cfg Config, deps Deps) *Engine {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 250 * time.Millisecond
	}
	e := &Engine{
		cfg:           cfg,
		logger:        deps.Logger,
		player:        deps.Player,
		npcs:          deps.NPCs,
		lastDay:       1,
		tickLog:       deps.TickLog,
		audit:         deps.Audit,
		onTick:        deps.OnTick,
		onPlayerDeath: deps.OnPlayerDeath,
		stop:          make(chan struct{}),
	}
	e.clk = clock.New(e.handleTick, deps.Logger)
	e.driver = &npc.Driver{
		NPCs:   deps.NPCs,
		Work:   deps.Work,
		Mover:  mover{grid: deps.Grid, npcs: deps.NPCs},
		Logger: deps.Logger,
		OnDeath: func(n *entity.State) {
			if e.audit != nil {
				_ = e.audit.WriteAudit(AuditEntry{
					Kind: "DEATH", EntityType: "NPC", EntityID: n.ID, Name: n.Name, Day: e.lastDay,
				})
			}
		},
	}
	return e
}

// mover is the direct teleport-if-walkable movement collaborator.
type mover struct {
	grid *worldmap.Grid
	npcs *entity.NPCStore
}

func (m mover) MoveNPC(n *entity.State, x, y int) bool {
	if m.grid != nil && !m.grid.IsWalkable(x, y) {
		return false
	}
	return m.npcs.UpdateAttributes(n.ID, map[string]any{"x": x, "y": y})
}

// Run drives the scheduler until the context is cancelled or Stop is called.
// A second concurrent Run is rejected; stop, then start.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return errors.New("engine already running")
	}
	defer e.running.Store(false)

	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.stop:
			return nil
		case <-ticker.C:
			e.pulse()
		}
	}
}

// Stop halts the scheduler before its next pulse.
func (e *Engine) Stop() {
	select {
	case <-e.stop:
	default:
		close(e.stop)
	}
}

// pulse advances the clock by one scheduler interval's worth of game seconds.
// The clock invokes handleTick synchronously on success.
func (e *Engine) pulse() {
	gameSeconds := e.cfg.TickInterval.Seconds() * gameSecondsPerRealSecond * float64(e.clk.Speed())
	e.clk.Advance(gameSeconds)
}

func (e *Engine) handleTick(t clock.GameTime) {
	start := time.Now()

	e.mu.Lock()
	newDay := t.Day > e.lastDay
	if newDay {
		e.applyPlayerDay()
	}
	for _, n := range e.npcs.Active() {
		e.driver.Process(n, t.Hour, newDay)
	}
	if newDay {
		e.lastDay = t.Day
	}
	snap := e.snapshotLocked(t)
	e.mu.Unlock()

	if e.tickLog != nil {
		_ = e.tickLog.WriteTick(TickLogEntry{
			Day: t.Day, Hour: t.Hour, Minute: t.Minute,
			SpeedScale: snap.SpeedScale, Sleeping: snap.Sleeping,
			NPCs: len(snap.NPCs), WallMs: time.Since(start).Milliseconds(),
		})
	}
	if e.onTick != nil {
		e.onTick(snap)
	}
}

// applyPlayerDay runs the player's daily survival effects. The player is
// always processed before any NPC on a day boundary.
func (e *Engine) applyPlayerDay() {
	st := e.player.State()
	needs := st.Needs
	res := survival.ApplyDailyEffects(&needs)
	if res.NeedsChanged || res.HealthChanged {
		e.player.UpdateAttributes(map[string]any{
			"hunger": needs.Hunger,
			"thirst": needs.Thirst,
			"health": needs.Health,
		})
	}
	if res.IsDead && !e.playerDead {
		e.playerDead = true
		if e.logger != nil {
			e.logger.Printf("engine: player %s died", st.Name)
		}
		if e.audit != nil {
			_ = e.audit.WriteAudit(AuditEntry{
				Kind: "DEATH", EntityType: "PLAYER", EntityID: entity.PlayerID, Name: st.Name, Day: e.lastDay,
			})
		}
		if e.onPlayerDeath != nil {
			e.onPlayerDeath()
		}
	}
}

// Clock control. The clock guards its own state; these are safe to call from
// any goroutine.

func (e *Engine) Pause()         { e.clk.Pause() }
func (e *Engine) Resume()        { e.clk.Resume() }
func (e *Engine) SetSpeed(n int) { e.clk.SetSpeed(n) }
func (e *Engine) StartSleep()    { e.clk.StartSleep() }
func (e *Engine) StopSleep()     { e.clk.StopSleep() }

func (e *Engine) CurrentTime() clock.GameTime { return e.clk.Now() }

// Read access for the UI layer. Values are copies; the next tick may change
// the underlying state.

func (e *Engine) PlayerAttribute(name string) (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.player.Attribute(name)
}

func (e *Engine) NPCAttribute(id, name string) (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.npcs.Attribute(id, name)
}

func (e *Engine) ActiveNPCIDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.npcs.ActiveIDs()
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(e.clk.Now())
}
