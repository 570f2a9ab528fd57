package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/tramova/tramova/internal/server"
	"github.com/tramova/tramova/modules"
	tripservices "github.com/tramova/tramova/modules/trips/services"
	"github.com/tramova/tramova/pkg/application"
	"github.com/tramova/tramova/pkg/composables"
	"github.com/tramova/tramova/pkg/configuration"
	"github.com/tramova/tramova/pkg/eventbus"
)

func main() {
	conf := configuration.Use()
	defer conf.Unload()
	log := conf.Logger()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		log.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.WithError(err).Fatal("database is unreachable")
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(log),
		Logger:   log,
	})
	if err := modules.Load(app); err != nil {
		log.WithError(err).Fatal("failed to register modules")
	}
	if err := app.Migrations().Apply(ctx); err != nil {
		log.WithError(err).Fatal("failed to apply migrations")
	}

	go purgeExpiredSessions(ctx, app, pool, conf.Import.PurgeInterval, log)

	srv, err := server.Default(&server.DefaultOptions{
		Logger:        log,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to build server")
	}
	log.WithField("address", conf.SocketAddress).Info("listening")
	if err := srv.Start(conf.SocketAddress); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// purgeExpiredSessions drops import sessions past their TTL on a fixed
// interval. Expiry is a deletion policy, not a state transition, so this runs
// outside any request.
func purgeExpiredSessions(
	ctx context.Context,
	app application.Application,
	pool *pgxpool.Pool,
	interval time.Duration,
	log *logrus.Logger,
) {
	imports := app.Service(tripservices.ImportService{}).(*tripservices.ImportService)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		purgeCtx := composables.WithPool(ctx, pool)
		if n, err := imports.PurgeExpired(purgeCtx, time.Now()); err == nil && n > 0 {
			log.Debugf("purged %d expired import sessions", n)
		}
	}
}
