package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/CallTrack/internal/config"
	grpcv1 "github.com/Egor213/CallTrack/internal/controller/grpc/v1"
	httpv1 "github.com/Egor213/CallTrack/internal/controller/http/v1"
	"github.com/Egor213/CallTrack/internal/metrics"
	"github.com/Egor213/CallTrack/internal/repo"
	"github.com/Egor213/CallTrack/internal/service"
	errorsUtils "github.com/Egor213/CallTrack/pkg/errors"
	"github.com/Egor213/CallTrack/pkg/grpcserver"
	"github.com/Egor213/CallTrack/pkg/httpserver"
	"github.com/Egor213/CallTrack/pkg/logger"
	"github.com/Egor213/CallTrack/pkg/postgres"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	log "github.com/sirupsen/logrus"
)

func Run() {
	// Config
	cfg, err := config.New()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Logger
	logger.SetupLogger(cfg.Log.Level)
	log.Info("Logger has been set up")

	location, err := cfg.App.Location()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Migrations
	Migrate(cfg.PG.URL, cfg.PG.MigrationsPath)

	// DB connecting
	log.Info("Connecting to DB")
	pg, err := postgres.New(cfg.PG.URL,
		postgres.MaxPoolSize(cfg.PG.MaxPoolSize),
		postgres.ConnRetry(cfg.PG.ConnAttempts, cfg.PG.ConnRetryDelay),
	)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer pg.Close()
	log.Info("Connected to DB")

	// Broker
	producer, err := newProducer(cfg.Broker)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	if producer != nil {
		log.WithField("driver", cfg.Broker.Driver).Info("Record publication enabled")
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error(errorsUtils.WrapPathErr(err))
			}
		}()
	}

	// Repos
	repositories := repo.NewRepositories(pg)

	// Services
	counters := metrics.NewCounters(prometheus.DefaultRegisterer)
	deps := service.ServicesDependencies{
		Repos:          repositories,
		Counters:       counters,
		BrokerProducer: producer,
		TxManager:      pg.SnapshotTrManager,
		Location:       location,
	}
	services := service.NewServices(deps)

	// HTTP API server
	log.Infof("Starting HTTP server...")
	log.Debugf("Server port: %s", cfg.HTTP.Port)
	apiHandler := echo.New()
	apiHandler.Use(metrics.Middleware())
	httpv1.ConfigureRouter(apiHandler, services, counters)
	apiServer := httpserver.New(apiHandler,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.Timeouts(cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout),
		httpserver.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	)

	// gRPC Server
	log.Infof("Starting gRPC server...")
	log.Debugf("Server port: %s", cfg.GRPC.Port)
	registerFun := grpcv1.RegisterServices(services, counters)
	grpcServer, err := grpcserver.New(registerFun,
		grpcserver.WithPort(cfg.GRPC.Port),
		grpcserver.WithUnaryInterceptors(grpcv1.LoggingInterceptor()),
	)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Prometheus server
	log.Infof("Starting metrics server...")
	log.Debugf("Server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metrics.ConfigureRouter(metricsHandler)
	metricsServer := httpserver.New(metricsHandler, httpserver.Port(cfg.Prometheus.Port))

	// Waiting signal
	log.Info("Configuring graceful shutdown")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app - Run - signal: " + s.String())
	case err := <-apiServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err := <-metricsServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err := <-grpcServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	}

	// Graceful shutdown
	log.Info("Shutting down...")
	if err := apiServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if err := metricsServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	grpcServer.Shutdown()
}
