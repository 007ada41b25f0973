package routers

import (
	"healthcare-fhir-gateway/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachResourceRoutes(router chi.Router, clinicalController *controllers.ClinicalController) {
	router.Get("/find/{resourceType}/{resourceId}", clinicalController.FindResource)

	router.Put("/resource/{resourceType}/{resourceId}", clinicalController.UpdateResource)
	router.Patch("/resource/{resourceType}/{resourceId}", clinicalController.PatchResource)
	router.Delete("/resource/{resourceType}/{resourceId}", clinicalController.DeleteResource)
	router.Delete("/resource/{resourceType}/{resourceId}/$purge", clinicalController.PurgeResource)
}
