package main

import (
	"context"
	"fmt"
	"healthcare-fhir-gateway/internal/app/config"
	"healthcare-fhir-gateway/internal/app/delivery/http/controllers"
	"healthcare-fhir-gateway/internal/app/delivery/http/middlewares"
	"healthcare-fhir-gateway/internal/app/delivery/http/routers"
	"healthcare-fhir-gateway/internal/app/drivers/healthcare"
	"healthcare-fhir-gateway/internal/app/drivers/logger"
	"healthcare-fhir-gateway/internal/app/drivers/observability"
	"healthcare-fhir-gateway/internal/app/services/clinical"
	"healthcare-fhir-gateway/internal/app/services/fhir_store"
	"healthcare-fhir-gateway/internal/pkg/builders"
	"healthcare-fhir-gateway/internal/pkg/utils"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger, err := logger.NewZapLogger(driverConfig, internalConfig)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}

	ctx := context.Background()

	tracerProvider, err := observability.InitTracer(ctx, driverConfig.Tracing, internalConfig)
	if err != nil {
		zapLogger.Fatal("Error initializing tracer", zap.Error(err))
	}

	collector := observability.NewCollector()

	httpClient, err := healthcare.NewHTTPClient(ctx, internalConfig, driverConfig, zapLogger, collector)
	if err != nil {
		zapLogger.Fatal("Error initializing FHIR store transport", zap.Error(err))
	}

	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		Logger:         zapLogger,
		HTTPClient:     httpClient,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
		TracerShutdown: tracerProvider.Shutdown,
	}

	err = bootstrapingTheApp(bootstrap, collector)
	if err != nil {
		zapLogger.Fatal("Error bootstraping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server listening",
			zap.String("address", internalConfig.App.Port),
			zap.String("fhir_store", internalConfig.StoreBaseURL()),
		)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error releasing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap, collector *observability.Collector) error {
	localZone, err := utils.LoadLocation(bootstrap.InternalConfig.App.Timezone)
	if err != nil {
		return fmt.Errorf("loading APP_TIMEZONE %q: %w", bootstrap.InternalConfig.App.Timezone, err)
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig, collector)

	// FHIR store
	fhirStoreClient := fhir_store.NewFhirStoreClient(
		bootstrap.InternalConfig.StoreBaseURL(),
		bootstrap.HTTPClient,
		bootstrap.Logger,
		collector,
	)

	// Clinical
	documentBuilder := builders.NewDocumentBuilder(localZone, time.Now)
	clinicalUsecase := clinical.NewClinicalUsecase(fhirStoreClient, documentBuilder, bootstrap.Logger, collector)
	clinicalController := controllers.NewClinicalController(bootstrap.Logger, clinicalUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, clinicalController, collector.MetricsHandler())
	return nil
}
