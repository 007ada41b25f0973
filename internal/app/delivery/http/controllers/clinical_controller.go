package controllers

import (
	"context"
	"healthcare-fhir-gateway/internal/app/contracts"
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"healthcare-fhir-gateway/internal/pkg/exceptions"
	"healthcare-fhir-gateway/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ClinicalController struct {
	Log             *zap.Logger
	ClinicalUsecase contracts.ClinicalUsecase
}

func NewClinicalController(logger *zap.Logger, clinicalUsecase contracts.ClinicalUsecase) *ClinicalController {
	return &ClinicalController{
		Log:             logger,
		ClinicalUsecase: clinicalUsecase,
	}
}

func (ctrl *ClinicalController) CreatePatient(w http.ResponseWriter, r *http.Request) {
	handleCreate(ctrl, w, r, constvars.ResourcePatient, ctrl.ClinicalUsecase.CreatePatient)
}

func (ctrl *ClinicalController) CreateEncounter(w http.ResponseWriter, r *http.Request) {
	handleCreate(ctrl, w, r, constvars.ResourceEncounter, ctrl.ClinicalUsecase.CreateEncounter)
}

func (ctrl *ClinicalController) CreateCondition(w http.ResponseWriter, r *http.Request) {
	handleCreate(ctrl, w, r, constvars.ResourceCondition, ctrl.ClinicalUsecase.CreateCondition)
}

func (ctrl *ClinicalController) CreateProcedure(w http.ResponseWriter, r *http.Request) {
	handleCreate(ctrl, w, r, constvars.ResourceProcedure, ctrl.ClinicalUsecase.CreateProcedure)
}

func (ctrl *ClinicalController) CreatePractitioner(w http.ResponseWriter, r *http.Request) {
	handleCreate(ctrl, w, r, constvars.ResourcePractitioner, ctrl.ClinicalUsecase.CreatePractitioner)
}

func (ctrl *ClinicalController) CreateMedicationRequest(w http.ResponseWriter, r *http.Request) {
	handleCreate(ctrl, w, r, constvars.ResourceMedicationRequest, ctrl.ClinicalUsecase.CreateMedicationRequest)
}

func (ctrl *ClinicalController) CreateDiagnosticReport(w http.ResponseWriter, r *http.Request) {
	handleCreate(ctrl, w, r, constvars.ResourceDiagnosticReport, ctrl.ClinicalUsecase.CreateDiagnosticReport)
}

func (ctrl *ClinicalController) CreateObservation(w http.ResponseWriter, r *http.Request) {
	handleCreate(ctrl, w, r, constvars.ResourceObservation, ctrl.ClinicalUsecase.CreateObservation)
}

// handleCreate decodes the flat request body into T and hands it to create.
func handleCreate[T any](ctrl *ClinicalController, w http.ResponseWriter, r *http.Request, resourceType string, create func(context.Context, *T) (json.RawMessage, error)) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ClinicalController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)

	request := new(T)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("ClinicalController.Create failed to parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	result, err := create(r.Context(), request)
	if err != nil {
		ctrl.Log.Error("ClinicalController.Create error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ClinicalController.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)
	utils.BuildJSONResponse(w, constvars.StatusOK, result)
}

func (ctrl *ClinicalController) SearchPatientByMRN(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	mrn := chi.URLParam(r, constvars.URLParamMRN)
	ctrl.Log.Info("ClinicalController.SearchPatientByMRN called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMRNKey, mrn),
	)

	result, err := ctrl.ClinicalUsecase.SearchPatientByMRN(r.Context(), mrn)
	if err != nil {
		ctrl.Log.Error("ClinicalController.SearchPatientByMRN error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ClinicalController.SearchPatientByMRN succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(result)),
	)
	utils.BuildJSONResponse(w, constvars.StatusOK, result)
}

func (ctrl *ClinicalController) FindEverythingByMRN(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	mrn := chi.URLParam(r, constvars.URLParamMRN)
	ctrl.Log.Info("ClinicalController.FindEverythingByMRN called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMRNKey, mrn),
	)

	result, err := ctrl.ClinicalUsecase.FindEverythingByMRN(r.Context(), mrn)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ClinicalController.FindEverythingByMRN succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(result)),
	)
	utils.BuildJSONResponse(w, constvars.StatusOK, result)
}
