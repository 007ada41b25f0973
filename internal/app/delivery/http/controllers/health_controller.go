package controllers

import (
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"healthcare-fhir-gateway/internal/pkg/dto/responses"
	"healthcare-fhir-gateway/internal/pkg/utils"
	"net/http"
)

func Healthz(w http.ResponseWriter, r *http.Request) {
	utils.BuildJSONResponse(w, constvars.StatusOK, responses.HealthResponse{Status: "ok"})
}
