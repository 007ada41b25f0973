package middlewares

import (
	"healthcare-fhir-gateway/internal/app/config"
	"healthcare-fhir-gateway/internal/app/drivers/observability"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	Metrics        *observability.Collector
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, collector *observability.Collector) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		Metrics:        collector,
	}
}
