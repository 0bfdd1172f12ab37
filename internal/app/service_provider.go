package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	eventsAPI "wheel_backend/internal/api/events"
	gameAPI "wheel_backend/internal/api/game"
	"wheel_backend/internal/api/web"
	"wheel_backend/internal/config"
	"wheel_backend/internal/config/env"
	sessionMW "wheel_backend/internal/middleware"
	"wheel_backend/internal/repository"
	"wheel_backend/internal/repository/session_repo"
	"wheel_backend/internal/repository/spin_log_repo"
	"wheel_backend/internal/repository/stats_repo"
	"wheel_backend/internal/service"
	"wheel_backend/internal/service/events"
	"wheel_backend/internal/service/game"
	"wheel_backend/internal/service/session"
	"wheel_backend/internal/service/simulation"
	"wheel_backend/internal/service/wheel"
	"wheel_backend/pkg/resp"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

const configPath = "config.yaml"

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	pgTried  bool
	dbClient *pgxpool.Pool

	// Runtime
	runtimeCfg config.RuntimeConfig
	rng        wheel.RNG

	// Wheel bits
	wheelCfg      config.WheelConfig
	simulationCfg config.SimulationConfig
	selector      *wheel.Selector
	machine       *game.Machine
	planner       *simulation.Planner

	// Session bits
	sessionCfg  config.SessionConfig
	sessionRepo repository.SessionRepository
	statsRepo   repository.StatsRepository
	spinLogRepo repository.SpinLogRepository
	broker      *events.Broker
	gameServ    service.GameService
	gameHand    *gameAPI.Handler
	eventsHand  *eventsAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

// PgConfig nil, если PG_DSN не задан
func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if !sp.pgTried {
		sp.pgTried = true
		cfg, err := env.NewPGConfig()
		if err != nil {
			if !errors.Is(err, env.ErrPGNotConfigured) {
				panic("failed to get database config: " + err.Error())
			}
			log.Printf("PG_DSN not set, spin log kept in memory")
			return nil
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		err = spin_log_repo.Migrate(ctx, dbc)
		if err != nil {
			panic("failed to migrate db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) RuntimeCfg() config.RuntimeConfig {
	if sp.runtimeCfg == nil {
		cfg, err := env.NewRuntimeConfig()
		if err != nil {
			panic("failed to get runtime config: " + err.Error())
		}
		sp.runtimeCfg = cfg
	}
	return sp.runtimeCfg
}

// RNG Общий источник случайности. WHEEL_SEED делает прогон воспроизводимым
func (sp *ServiceProvider) RNG() wheel.RNG {
	if sp.rng == nil {
		if seed, ok := sp.RuntimeCfg().Seed(); ok {
			log.Printf("using seeded rng: %d", seed)
			sp.rng = wheel.NewSeededRNG(seed)
		} else {
			sp.rng = wheel.SystemRNG{}
		}
	}
	return sp.rng
}

func (sp *ServiceProvider) WheelCfg() config.WheelConfig {
	if sp.wheelCfg == nil {
		cfg, err := env.NewWheelConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get wheel config: " + err.Error())
		}
		sp.wheelCfg = cfg
	}
	return sp.wheelCfg
}

func (sp *ServiceProvider) SimulationCfg() config.SimulationConfig {
	if sp.simulationCfg == nil {
		cfg, err := env.NewSimulationConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get simulation config: " + err.Error())
		}
		sp.simulationCfg = cfg
	}
	return sp.simulationCfg
}

func (sp *ServiceProvider) Selector() *wheel.Selector {
	if sp.selector == nil {
		table := sp.WheelCfg().Outcomes()
		if table == nil {
			table = wheel.DefaultTable()
		}
		s, err := wheel.NewSelector(table, sp.RNG())
		if err != nil {
			panic("failed to create outcome selector: " + err.Error())
		}
		sp.selector = s
	}
	return sp.selector
}

func (sp *ServiceProvider) Machine() *game.Machine {
	if sp.machine == nil {
		pool := sp.WheelCfg().WarningPool()
		if pool == nil {
			pool = game.DefaultWarningPool
		}
		minCount, maxCount := sp.WheelCfg().WarningRange()
		rules, err := game.NewRules(pool, minCount, maxCount)
		if err != nil {
			panic("failed to create warning rules: " + err.Error())
		}
		sp.machine = game.NewMachine(rules, sp.RNG(), sp.RuntimeCfg().Strict())
	}
	return sp.machine
}

func (sp *ServiceProvider) Planner() *simulation.Planner {
	if sp.planner == nil {
		sp.planner = simulation.NewPlanner(
			simulation.SpinSettingsFrom(sp.WheelCfg()),
			sp.SimulationCfg(),
			sp.RNG(),
		)
	}
	return sp.planner
}

func (sp *ServiceProvider) SessionCfg() config.SessionConfig {
	if sp.sessionCfg == nil {
		cfg, err := env.NewSessionConfig()
		if err != nil {
			panic("failed to get session config: " + err.Error())
		}
		sp.sessionCfg = cfg
	}
	return sp.sessionCfg
}

func (sp *ServiceProvider) SessionRepository() repository.SessionRepository {
	if sp.sessionRepo == nil {
		sp.sessionRepo = session_repo.NewSessionRepository()
	}
	return sp.sessionRepo
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository()
	}
	return sp.statsRepo
}

// SpinLogRepository Postgres, если задан PG_DSN, иначе в памяти
func (sp *ServiceProvider) SpinLogRepository(ctx context.Context) repository.SpinLogRepository {
	if sp.spinLogRepo == nil {
		if sp.PgConfig() != nil {
			sp.spinLogRepo = spin_log_repo.NewSpinLogRepository(sp.DBClient(ctx), sp.TXManager(ctx))
		} else {
			sp.spinLogRepo = spin_log_repo.NewMemorySpinLogRepository()
		}
	}
	return sp.spinLogRepo
}

func (sp *ServiceProvider) Broker() *events.Broker {
	if sp.broker == nil {
		sp.broker = events.NewBroker()
	}
	return sp.broker
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = session.NewGameService(session.Deps{
			Sessions: sp.SessionRepository(),
			Stats:    sp.StatsRepository(),
			SpinLog:  sp.SpinLogRepository(ctx),
			Machine:  sp.Machine(),
			Selector: sp.Selector(),
			Planner:  sp.Planner(),
			Broker:   sp.Broker(),
			IdleTTL:  sp.SessionCfg().IdleTTL(),
		})
	}
	return sp.gameServ
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{
			Serv: sp.GameService(ctx),
		})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) EventsHandler(ctx context.Context) *eventsAPI.Handler {
	if sp.eventsHand == nil {
		sp.eventsHand = eventsAPI.NewHandler(eventsAPI.HandlerDeps{
			Serv: sp.GameService(ctx),
		})
	}
	return sp.eventsHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		sessionCfg := sp.SessionCfg()
		withSession := sessionMW.Session(sessionCfg.SecretKey(), sessionCfg.TokenTTL())

		// Страница сразу выдает cookie, чтобы SSE и клики шли в одну сессию
		r.With(withSession).Get("/", web.Index)

		gameHandler := sp.GameHandler(ctx)
		eventsHandler := sp.EventsHandler(ctx)
		r.Route("/api", func(rr chi.Router) {
			// CORS middleware
			rr.Use(cors.Handler(cors.Options{
				AllowedOrigins:   []string{"*"},
				AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Content-Type"},
				AllowCredentials: false,
				MaxAge:           60 * 15,
			}))
			rr.Get("/stats", gameHandler.Stats)

			rr.Group(func(sr chi.Router) {
				sr.Use(withSession)
				sr.Get("/state", gameHandler.State)
				sr.Get("/events", eventsHandler.Stream)
				sr.Post("/start", gameHandler.Start)
				sr.Post("/warnings/confirm", gameHandler.ConfirmWarning)
				sr.Post("/warnings/cancel", gameHandler.CancelWarnings)
				sr.Post("/wheel/spin", gameHandler.Spin)
				sr.Post("/wheel/back", gameHandler.Back)
				sr.Post("/restart", gameHandler.Restart)
			})
		})

		sp.router = r
	}

	return sp.router
}

// Close Освободить внешние ресурсы
func (sp *ServiceProvider) Close() {
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}
