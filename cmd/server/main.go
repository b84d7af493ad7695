package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"wyrnlands.game/internal/persistence/gamedb"
	persistlog "wyrnlands.game/internal/persistence/log"
	"wyrnlands.game/internal/protocol"
	"wyrnlands.game/internal/sim/economy"
	"wyrnlands.game/internal/sim/engine"
	"wyrnlands.game/internal/sim/entity"
	"wyrnlands.game/internal/sim/jobs"
	"wyrnlands.game/internal/sim/skills"
	"wyrnlands.game/internal/sim/tuning"
	"wyrnlands.game/internal/sim/worldmap"
	"wyrnlands.game/internal/transport/ws"
)

// envDefaults can pre-set the flag defaults; flags win when passed.
type envDefaults struct {
	Addr      string `env:"WYRN_ADDR" envDefault:":8080"`
	DataDir   string `env:"WYRN_DATA_DIR" envDefault:"./data"`
	ConfigDir string `env:"WYRN_CONFIG_DIR" envDefault:"./configs"`
}

func main() {
	var defaults envDefaults
	if err := env.Parse(&defaults); err != nil {
		log.Fatalf("env: %v", err)
	}

	var (
		addr       = flag.String("addr", defaults.Addr, "http listen address")
		dataDir    = flag.String("data", defaults.DataDir, "runtime data directory")
		configDir  = flag.String("configs", defaults.ConfigDir, "config directory")
		playerName = flag.String("player", "Aldric", "player name (used only when starting a fresh world)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[wyrnlands] ", log.LstdFlags|log.Lmicroseconds)

	tun, err := tuning.Load(filepath.Join(*configDir, "tuning.yaml"))
	if err != nil {
		logger.Printf("tuning: %v (using defaults)", err)
		tun = tuning.Default()
	}

	catalog, err := jobs.LoadCatalog(filepath.Join(*configDir, "jobs.json"))
	if err != nil {
		logger.Fatalf("load job catalog: %v", err)
	}

	db, err := gamedb.Open(filepath.Join(*dataDir, "wyrnlands.db"))
	if err != nil {
		logger.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := seedWorld(db, tun, *playerName, logger); err != nil {
		logger.Fatalf("seed world: %v", err)
	}

	grid, err := worldmap.Load(db)
	if err != nil {
		logger.Fatalf("load map: %v", err)
	}
	player, err := entity.LoadPlayer(db, logger)
	if err != nil {
		logger.Fatalf("load player: %v", err)
	}
	npcs, err := entity.LoadNPCs(db, logger)
	if err != nil {
		logger.Fatalf("load npcs: %v", err)
	}
	logger.Printf("world loaded: %d live npcs", npcs.Count())

	funds := economy.NewLedger(db, logger)
	inventory := economy.NewInventory(db, logger)
	skillLedger := skills.NewLedger(db, logger)

	tickLog := persistlog.NewTickLogger(*dataDir)
	defer tickLog.Close()
	auditLog := persistlog.NewAuditLogger(*dataDir)
	defer auditLog.Close()

	var server *ws.Server

	resolver := &jobs.Resolver{
		Catalog:       catalog,
		Dir:           jobs.StoreDirectory{Player: player, NPCs: npcs},
		Funds:         funds,
		Items:         inventory,
		Skills:        skillLedger,
		Logger:        logger,
		StrictPayroll: tun.StrictPayroll,
		OnLevelUp: func(entityType, entityID, skillName string, newLevel int) {
			if server != nil {
				server.BroadcastEvent(protocol.EventMsg{
					Event: "LEVEL_UP", EntityType: entityType, EntityID: entityID,
					Detail: skillName,
				})
			}
		},
	}

	eng := engine.New(engine.Config{
		TickInterval: time.Duration(tun.TickIntervalMs) * time.Millisecond,
	}, engine.Deps{
		Player:  player,
		NPCs:    npcs,
		Grid:    grid,
		Work:    resolver,
		Logger:  logger,
		TickLog: tickLog,
		Audit:   auditLog,
		OnTick:  func(snap engine.Snapshot) { server.Broadcast(snap) },
		OnPlayerDeath: func() {
			server.BroadcastEvent(protocol.EventMsg{
				Event: "DEATH", EntityType: jobs.EntityPlayer, EntityID: entity.PlayerID,
			})
		},
	})
	server = ws.NewServer(eng, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := eng.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("engine: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", server.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Printf("listening on %s", *addr)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("http: %v", err)
	}
}
