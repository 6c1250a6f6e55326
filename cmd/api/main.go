package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"vetclinic-service/config"
	"vetclinic-service/internal/cache"
	v1 "vetclinic-service/internal/handler/v1"
	"vetclinic-service/internal/repository"
	"vetclinic-service/internal/service"
	"vetclinic-service/pkg/database"
	"vetclinic-service/pkg/logger"
	"vetclinic-service/pkg/metrics"
	"vetclinic-service/pkg/tracer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("loading configuration", zap.Error(err))
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		zap.NewExample().Fatal("building logger", zap.Error(err))
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("service exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return err
	}
	defer tp.Shutdown(context.Background())

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}
	if err := database.SeedVisitDetails(db, cfg.Appointment, log); err != nil {
		return err
	}

	redisClient, err := database.ConnectRedis(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector("vetclinic", registry)

	cacheSvc := cache.WithMetrics(
		cache.NewRedis(redisClient, cfg.Cache.TTL),
		collector.CacheHits,
		collector.CacheMisses,
	)

	customerRepo := repository.NewCustomerRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditSvc := service.NewAuditService(auditRepo, log, collector)
	defer auditSvc.Shutdown()

	visitDetailsSvc := service.NewVisitDetailsService(doctorRepo, cacheSvc, log)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, visitDetailsSvc, cacheSvc, auditSvc, log, collector)
	doctorSvc := service.NewDoctorService(doctorRepo, appointmentSvc, cacheSvc, log)
	customerSvc := service.NewCustomerService(customerRepo, doctorSvc, appointmentSvc, cacheSvc, log)

	router := v1.NewRouter(
		v1.NewCustomerHandler(customerSvc),
		v1.NewDoctorHandler(doctorSvc),
		log,
		collector,
		registry,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
