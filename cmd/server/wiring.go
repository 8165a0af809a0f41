package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fname-registry/internal/platform/config"
	"fname-registry/internal/platform/metrics"
	"fname-registry/internal/platform/migrations"
	"fname-registry/internal/platform/postgres"
	redisplatform "fname-registry/internal/platform/redis"
	"fname-registry/internal/transfers/handler"
	"fname-registry/internal/transfers/service"
	"fname-registry/internal/transfers/signature"
	"fname-registry/internal/transfers/store"
	"fname-registry/pkg/platform/httputil"
)

type storage struct {
	store service.Store
	db    *sql.DB
}

func (s storage) close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

// openStorage builds the transfer log for the configured backend, fronted by
// the Redis cache when Redis is available.
func openStorage(ctx context.Context, cfg config.Config, redisClient *redisplatform.Client, log *slog.Logger) (storage, error) {
	var (
		out  storage
		base service.Store
	)
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("using in-memory transfer storage; history is lost on restart")
		base = store.NewInMemory()
	default:
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return storage{}, err
		}
		if cfg.Database.RunMigrations {
			if err := migrations.Up(ctx, db); err != nil {
				_ = db.Close()
				return storage{}, err
			}
		}
		out.db = db
		base = store.NewPostgres(db)
	}

	if redisClient != nil && cfg.Redis.CacheTTL > 0 {
		base = store.NewCached(base, redisClient.Client, cfg.Redis.CacheTTL, log)
	}
	out.store = newBoundedTxStore(base)
	return out, nil
}

func newAuthority(cfg config.Config, redisClient *redisplatform.Client, log *slog.Logger) (*signature.Authority, error) {
	key, err := signature.ParsePrivateKey(cfg.Signer.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("SIGNER_PRIVATE_KEY: %w", err)
	}
	admins, err := signature.ParseAdminKeys(cfg.Signer.AdminKeys)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_KEYS: %w", err)
	}

	var authorizer signature.Authorizer = admins
	if cfg.Signer.AuthMode == config.AuthModeOpen {
		custody := signature.NewRedisCustodyResolver(redisClient.Client, cfg.Redis.CustodyKey)
		authorizer = signature.NewOpenRegistration(admins, custody)
	}
	return signature.NewAuthority(key, authorizer, signature.WithLogger(log))
}

func newRouter(
	transfers handler.Service,
	db *sql.DB,
	redisClient *redisplatform.Client,
	log *slog.Logger,
	httpMetrics *metrics.Metrics,
	requestTimeout time.Duration,
) http.Handler {
	router := chi.NewRouter()
	router.Handle("/metrics", metrics.Handler())
	router.Get("/healthz", healthHandler(db, redisClient))
	handler.New(transfers, log, httpMetrics, handler.WithRequestTimeout(requestTimeout)).Register(router)
	return router
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Redis    string `json:"redis,omitempty"`
}

func healthHandler(db *sql.DB, redisClient *redisplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		if db != nil {
			resp.Database = "ok"
			if err := db.PingContext(ctx); err != nil {
				resp.Status, resp.Database = "degraded", "unavailable"
			}
		}
		if redisClient != nil {
			resp.Redis = "ok"
			if err := redisClient.Health(ctx); err != nil {
				resp.Status, resp.Redis = "degraded", "unavailable"
			}
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, resp)
	}
}
