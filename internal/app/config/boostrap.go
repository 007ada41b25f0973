package config

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	Logger         *zap.Logger
	HTTPClient     *http.Client
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// TracerShutdown flushes pending spans. It is nil when tracing is disabled.
	TracerShutdown func(context.Context) error
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.HTTPClient != nil {
		b.HTTPClient.CloseIdleConnections()
		log.Println("Successfully closing idle FHIR store connections")
	}

	if b.TracerShutdown != nil {
		err := b.TracerShutdown(ctx)
		if err != nil {
			return err
		}
		log.Println("Successfully flushing tracer")
	}

	err := b.Logger.Sync()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Logger")

	return nil
}
