package main

import (
	"context"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/servicedesk-hq/servicedesk/modules/assets/domain/aggregates/asset"
	assetpersistence "github.com/servicedesk-hq/servicedesk/modules/assets/infrastructure/persistence"
	assetcontrollers "github.com/servicedesk-hq/servicedesk/modules/assets/presentation/controllers"
	assetservices "github.com/servicedesk-hq/servicedesk/modules/assets/services"
	"github.com/servicedesk-hq/servicedesk/modules/core/domain/aggregates/user"
	corepersistence "github.com/servicedesk-hq/servicedesk/modules/core/infrastructure/persistence"
	corecontrollers "github.com/servicedesk-hq/servicedesk/modules/core/presentation/controllers"
	coreservices "github.com/servicedesk-hq/servicedesk/modules/core/services"
	"github.com/servicedesk-hq/servicedesk/pkg/configuration"
	"github.com/servicedesk-hq/servicedesk/pkg/eventbus"
	"github.com/servicedesk-hq/servicedesk/pkg/metrics"
	"github.com/servicedesk-hq/servicedesk/pkg/middleware"
	"github.com/servicedesk-hq/servicedesk/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	publisher := eventbus.NewEventPublisher(logger)
	publisher.Subscribe(func(event *asset.CreatedEvent) {
		logger.WithField("pid", event.Result.PID()).Info("asset created")
	})
	publisher.Subscribe(func(event *user.CreatedEvent) {
		logger.WithField("email", event.Result.Email()).Info("user created")
	})

	assetRepo := assetpersistence.NewAssetRepository()
	userRepo := corepersistence.NewUserRepository()

	assetService := assetservices.NewAssetService(assetRepo, publisher)
	importService := assetservices.NewAssetImportService(assetRepo, userRepo, publisher)
	userService := coreservices.NewUserService(userRepo, publisher)

	serverControllers := []server.Controller{
		assetcontrollers.NewAssetsAPIController(assetService, importService),
		corecontrollers.NewUsersAPIController(userService),
	}
	if conf.Prometheus.Enabled {
		serverControllers = append(serverControllers, metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	srv := server.NewHTTPServer(
		serverControllers,
		[]mux.MiddlewareFunc{
			middleware.WithLogger(logger),
			middleware.WithPool(pool),
		},
		[]string{conf.Origin},
	)

	log.Printf("Listening on: %s\n", conf.Origin)
	if err := srv.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
