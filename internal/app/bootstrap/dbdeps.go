// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	accountstore "github.com/dalemusser/sahara/internal/app/store/accounts"
	"github.com/dalemusser/sahara/internal/app/store/audit"
	reliefstore "github.com/dalemusser/sahara/internal/app/store/relief"
	"github.com/dalemusser/sahara/internal/app/system/appstate"
	"github.com/dalemusser/sahara/internal/app/system/auditlog"
	"github.com/dalemusser/sahara/internal/app/system/drift"
	"github.com/dalemusser/sahara/internal/app/system/notify"
	"github.com/dalemusser/sahara/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the back-end dependencies shared by every hook.
//
// The relief store, its bus and the facade registry are always present.
// The Mongo client, database and audit store are nil when no mongo_uri is
// configured.
type DBDeps struct {
	Bus      *notify.Bus
	Relief   *reliefstore.Store
	Registry *appstate.Registry
	Accounts *accountstore.Store

	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Audit         *audit.Store
	AuditLog      *auditlog.Logger

	// Background workers, started in Startup and stopped in Shutdown.
	Drift   *drift.Simulator
	Reaper  *workers.SessionReaper
	Metrics *metricsObserver
}
