package routers

import (
	"healthcare-fhir-gateway/internal/app/config"
	"healthcare-fhir-gateway/internal/app/delivery/http/controllers"
	"healthcare-fhir-gateway/internal/app/delivery/http/middlewares"
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	clinicalController *controllers.ClinicalController,
	metricsHandler http.Handler,
) {
	allowedOrigins := internalConfig.CORS.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	corsOptions := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", constvars.HeaderAPIKey, constvars.HeaderXRequestID},
		ExposedHeaders: []string{constvars.HeaderXRequestID},
		MaxAge:         300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.HTTPMetrics)
	router.Use(middlewares.RateLimit())
	router.Use(middlewares.ErrorHandler)

	router.Get("/healthz", controllers.Healthz)
	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler)
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middlewares.APIKeyAuth)
		r.Use(middlewares.BodyLimit)

		attachClinicalRoutes(r, clinicalController)
		attachResourceRoutes(r, clinicalController)
	})
}
