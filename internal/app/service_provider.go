package app

import (
	"context"
	cardAPI "scratchcard/internal/api/card"
	"scratchcard/internal/config"
	"scratchcard/internal/config/env"
	"scratchcard/internal/middleware"
	"scratchcard/internal/repository"
	"scratchcard/internal/repository/card_repo"
	"scratchcard/internal/repository/filler_repo"
	"scratchcard/internal/service"
	"scratchcard/internal/service/card"
	"scratchcard/internal/service/filler"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

const configPath = "config.yaml"

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Auth
	jwtConfig config.JWTConfig

	// Card bits
	cardRepo repository.CardRepository
	cardServ service.CardService
	cardHand *cardAPI.Handler

	// Filler bits
	fillerCfg  config.FillerConfig
	fillerRepo repository.FillerRepository
	fillerServ service.FillerService

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		pgCfg := sp.PgConfig()
		poolCfg, err := pgxpool.ParseConfig(pgCfg.DSN())
		if err != nil {
			panic("failed to parse database dsn: " + err.Error())
		}
		if pgCfg.MaxConns() > 0 {
			poolCfg.MaxConns = pgCfg.MaxConns()
		}
		poolCfg.ConnConfig.ConnectTimeout = pgCfg.ConnectTimeout()

		dbc, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		pingCtx, cancel := context.WithTimeout(ctx, pgCfg.ConnectTimeout())
		defer cancel()
		err = dbc.Ping(pingCtx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
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

func (sp *ServiceProvider) JWTConfig() config.JWTConfig {
	if sp.jwtConfig == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtConfig = cfg
	}
	return sp.jwtConfig
}

func (sp *ServiceProvider) CardRepository(ctx context.Context) repository.CardRepository {
	if sp.cardRepo == nil {
		sp.cardRepo = card_repo.NewCardRepository(sp.DBClient(ctx))
	}
	return sp.cardRepo
}

func (sp *ServiceProvider) CardService(ctx context.Context) service.CardService {
	if sp.cardServ == nil {
		sp.cardServ = card.NewCardService(sp.CardRepository(ctx), sp.TXManager(ctx))
	}
	return sp.cardServ
}

func (sp *ServiceProvider) FillerCfg() config.FillerConfig {
	if sp.fillerCfg == nil {
		cfg, err := env.NewFillerConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get filler config: " + err.Error())
		}
		sp.fillerCfg = cfg
	}
	return sp.fillerCfg
}

func (sp *ServiceProvider) FillerRepository() repository.FillerRepository {
	if sp.fillerRepo == nil {
		sp.fillerRepo = filler_repo.NewFillerRepository(sp.FillerCfg().Messages())
	}
	return sp.fillerRepo
}

func (sp *ServiceProvider) FillerService() service.FillerService {
	if sp.fillerServ == nil {
		sp.fillerServ = filler.NewFillerService(sp.FillerRepository())
	}
	return sp.fillerServ
}

func (sp *ServiceProvider) CardHandler(ctx context.Context) *cardAPI.Handler {
	if sp.cardHand == nil {
		sp.cardHand = cardAPI.NewHandler(cardAPI.HandlerDeps{
			Serv:   sp.CardService(ctx),
			Filler: sp.FillerService(),
		})
	}
	return sp.cardHand
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

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Card endpoints, только с токеном
		cardHandler := sp.CardHandler(ctx)
		r.Group(func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTConfig().AccessTokenSecretKey()))
			cardHandler.Routes(rr)
		})

		sp.router = r
	}

	return sp.router
}

// Close закрывает пул соединений
func (sp *ServiceProvider) Close() {
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}
