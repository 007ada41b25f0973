package routers

import (
	"healthcare-fhir-gateway/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachClinicalRoutes(router chi.Router, clinicalController *controllers.ClinicalController) {
	router.Post("/patient", clinicalController.CreatePatient)
	router.Post("/encounter", clinicalController.CreateEncounter)
	router.Post("/condition", clinicalController.CreateCondition)
	router.Post("/procedure", clinicalController.CreateProcedure)
	router.Post("/practitioner", clinicalController.CreatePractitioner)
	router.Post("/medication_request", clinicalController.CreateMedicationRequest)
	router.Post("/diagnostic_report", clinicalController.CreateDiagnosticReport)
	router.Post("/observation", clinicalController.CreateObservation)

	router.Get("/search/patient/mrn/{mrn}", clinicalController.SearchPatientByMRN)
	router.Get("/patient/everything/mrn/{mrn}", clinicalController.FindEverythingByMRN)
}
