package controllers

import (
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"healthcare-fhir-gateway/internal/pkg/dto/requests"
	"healthcare-fhir-gateway/internal/pkg/exceptions"
	"healthcare-fhir-gateway/internal/pkg/fhir_dto"
	"healthcare-fhir-gateway/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func resourceKeyFromURL(r *http.Request) requests.ResourceKey {
	return requests.ResourceKey{
		ResourceType: chi.URLParam(r, constvars.URLParamResourceType),
		ResourceID:   chi.URLParam(r, constvars.URLParamResourceID),
	}
}

func (ctrl *ClinicalController) logResourceCall(message string, requestID string, key requests.ResourceKey) {
	ctrl.Log.Info(message,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, key.ResourceType),
		zap.String(constvars.LoggingResourceIDKey, key.ResourceID),
	)
}

func (ctrl *ClinicalController) FindResource(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	key := resourceKeyFromURL(r)
	ctrl.logResourceCall("ClinicalController.FindResource called", requestID, key)

	result, err := ctrl.ClinicalUsecase.FindResource(r.Context(), key)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.logResourceCall("ClinicalController.FindResource succeeded", requestID, key)
	utils.BuildJSONResponse(w, constvars.StatusOK, result)
}

func (ctrl *ClinicalController) UpdateResource(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	key := resourceKeyFromURL(r)
	ctrl.logResourceCall("ClinicalController.UpdateResource called", requestID, key)

	var resource fhir_dto.Resource
	if err := json.NewDecoder(r.Body).Decode(&resource); err != nil {
		ctrl.Log.Error("ClinicalController.UpdateResource failed to parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	result, err := ctrl.ClinicalUsecase.UpdateResource(r.Context(), key, resource)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.logResourceCall("ClinicalController.UpdateResource succeeded", requestID, key)
	utils.BuildJSONResponse(w, constvars.StatusOK, result)
}

// PatchResource expects an RFC 6902 operation array as the body.
func (ctrl *ClinicalController) PatchResource(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	request := &requests.PatchResource{ResourceKey: resourceKeyFromURL(r)}
	ctrl.logResourceCall("ClinicalController.PatchResource called", requestID, request.ResourceKey)

	if err := json.NewDecoder(r.Body).Decode(&request.Operations); err != nil {
		ctrl.Log.Error("ClinicalController.PatchResource failed to parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	ctrl.Log.Debug("ClinicalController.PatchResource operations parsed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPatchOpCountKey, len(request.Operations)),
	)

	result, err := ctrl.ClinicalUsecase.PatchResource(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.logResourceCall("ClinicalController.PatchResource succeeded", requestID, request.ResourceKey)
	utils.BuildJSONResponse(w, constvars.StatusOK, result)
}

func (ctrl *ClinicalController) DeleteResource(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	key := resourceKeyFromURL(r)
	ctrl.logResourceCall("ClinicalController.DeleteResource called", requestID, key)

	if err := ctrl.ClinicalUsecase.DeleteResource(r.Context(), key); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.logResourceCall("ClinicalController.DeleteResource succeeded", requestID, key)
	utils.BuildJSONResponse(w, constvars.StatusOK, json.RawMessage(`{}`))
}

func (ctrl *ClinicalController) PurgeResource(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	key := resourceKeyFromURL(r)
	ctrl.logResourceCall("ClinicalController.PurgeResource called", requestID, key)

	if err := ctrl.ClinicalUsecase.PurgeResource(r.Context(), key); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.logResourceCall("ClinicalController.PurgeResource succeeded", requestID, key)
	utils.BuildJSONResponse(w, constvars.StatusOK, json.RawMessage(`{}`))
}
