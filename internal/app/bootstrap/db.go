// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	accountstore "github.com/dalemusser/sahara/internal/app/store/accounts"
	"github.com/dalemusser/sahara/internal/app/store/audit"
	reliefstore "github.com/dalemusser/sahara/internal/app/store/relief"
	"github.com/dalemusser/sahara/internal/app/system/appstate"
	"github.com/dalemusser/sahara/internal/app/system/auditlog"
	"github.com/dalemusser/sahara/internal/app/system/drift"
	"github.com/dalemusser/sahara/internal/app/system/i18n"
	"github.com/dalemusser/sahara/internal/app/system/latency"
	"github.com/dalemusser/sahara/internal/app/system/metrics"
	"github.com/dalemusser/sahara/internal/app/system/notify"
	"github.com/dalemusser/sahara/internal/app/system/timeouts"
	"github.com/dalemusser/sahara/internal/app/system/validators"
	"github.com/dalemusser/sahara/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// reaperInterval is how often idle session state is swept.
const reaperInterval = time.Minute

// ConnectDB builds the in-memory relief backend and, when a mongo_uri is
// configured, connects the audit store.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	timeouts.Configure(timeouts.Config{
		Ping:  appCfg.PingTimeout,
		Write: appCfg.WriteTimeout,
		Query: appCfg.QueryTimeout,
	})

	var (
		client   *mongo.Client
		db       *mongo.Database
		store    *audit.Store
		recorder auditlog.Recorder
	)
	if appCfg.MongoURI != "" {
		var err error
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
		if err != nil {
			logger.Error("MongoDB connect failed", zap.Error(err))
			return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
		}
		pingCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Ping(), logger, "startup ping")
		err = client.Ping(pingCtx, nil)
		cancel()
		if err != nil {
			_ = client.Disconnect(ctx)
			logger.Error("MongoDB ping failed", zap.Error(err))
			return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
		}
		db = client.Database(appCfg.MongoDatabase)
		store = audit.New(db)
		recorder = store
		logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	} else {
		logger.Info("no mongo_uri configured; audit events go to the log only")
	}

	auditLog := auditlog.New(recorder, logger, auditlog.Config{
		Auth:   appCfg.AuditLogAuth,
		Admin:  appCfg.AuditLogAdmin,
		Relief: appCfg.AuditLogRelief,
	})

	deps, err := buildRelief(appCfg, auditLog, logger)
	if err != nil {
		if client != nil {
			_ = client.Disconnect(ctx)
		}
		return DBDeps{}, err
	}
	deps.MongoClient = client
	deps.MongoDatabase = db
	deps.Audit = store
	return deps, nil
}

// buildRelief assembles the store, bus, registry, accounts and workers.
// Workers are created here but not started.
func buildRelief(appCfg AppConfig, auditLog *auditlog.Logger, logger *zap.Logger) (DBDeps, error) {
	bus := notify.New()
	relief := reliefstore.New(bus)

	accounts, err := accountstore.New(0)
	if err != nil {
		return DBDeps{}, fmt.Errorf("seed accounts: %w", err)
	}

	registry := appstate.NewRegistry(relief, bus, logger, appstate.Options{
		Latency:    latency.Fixed(appCfg.ActionLatency),
		Translator: i18n.New(),
		Language:   appCfg.DefaultLanguage,
	})

	deps := DBDeps{
		Bus:      bus,
		Relief:   relief,
		Registry: registry,
		Accounts: accounts,
		AuditLog: auditLog,
		Metrics:  &metricsObserver{src: relief, bus: bus},
		Reaper:   workers.NewSessionReaper(registry, logger, reaperInterval, appCfg.SessionIdleTimeout),
	}

	if appCfg.DriftEnabled {
		deps.Drift = drift.New(relief, logger, drift.Config{
			Interval:    appCfg.DriftInterval,
			Probability: float64(appCfg.DriftChancePct) / 100,
			OnAssign: func(a drift.Assignment) {
				metrics.RecordDriftAssignment()
				auditLog.DriftAssigned(context.Background(), a.RequestID, a.VolunteerID)
			},
		})
	}
	return deps, nil
}

// EnsureSchema creates the audit collection, its validator and its indexes
// when MongoDB is configured.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Audit == nil {
		return nil
	}
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Write(), logger, "ensure schema")
	defer cancel()
	if err := validators.EnsureAll(ctx, deps.MongoDatabase, logger); err != nil {
		logger.Error("collection validators failed", zap.Error(err))
		return fmt.Errorf("validators: %w", err)
	}
	if err := deps.Audit.EnsureIndexes(ctx); err != nil {
		logger.Error("audit index creation failed", zap.Error(err))
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}
