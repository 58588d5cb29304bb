package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// PipelineHandler handles HTTP requests for pipelines, stages and
// opportunities
type PipelineHandler struct {
	pipelineService *service.PipelineService
	logger          *zap.Logger
}

func NewPipelineHandler(pipelineService *service.PipelineService, logger *zap.Logger) *PipelineHandler {
	return &PipelineHandler{pipelineService: pipelineService, logger: logger}
}

func (h *PipelineHandler) List(w http.ResponseWriter, r *http.Request) {
	pipelines, err := h.pipelineService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list pipelines", zap.Error(err))
		respondDomainError(w, err, "pipelines")
		return
	}
	respondJSON(w, http.StatusOK, pipelines)
}

func (h *PipelineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid pipeline ID: must be a valid UUID")
		return
	}

	pipeline, err := h.pipelineService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "pipeline")
		return
	}
	respondJSON(w, http.StatusOK, pipeline)
}

func (h *PipelineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePipelineRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pipeline, err := h.pipelineService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create pipeline", zap.Error(err))
		respondDomainError(w, err, "pipeline")
		return
	}

	w.Header().Set("Location", "/api/v1/pipelines/"+pipeline.ID.String())
	respondJSON(w, http.StatusCreated, pipeline)
}

func (h *PipelineHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid pipeline ID: must be a valid UUID")
		return
	}

	var req struct {
		Name      *string `json:"name,omitempty"`
		IsDefault *bool   `json:"isDefault,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	pipeline, err := h.pipelineService.Update(r.Context(), id, req.Name, req.IsDefault)
	if err != nil {
		respondDomainError(w, err, "pipeline")
		return
	}
	respondJSON(w, http.StatusOK, pipeline)
}

func (h *PipelineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid pipeline ID: must be a valid UUID")
		return
	}

	if err := h.pipelineService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "pipeline")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PipelineHandler) AddStage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid pipeline ID: must be a valid UUID")
		return
	}

	var req domain.CreateStageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	stage, err := h.pipelineService.AddStage(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "stage")
		return
	}
	respondJSON(w, http.StatusCreated, stage)
}

func (h *PipelineHandler) RemoveStage(w http.ResponseWriter, r *http.Request) {
	pipelineID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid pipeline ID: must be a valid UUID")
		return
	}
	stageID, err := uuid.Parse(chi.URLParam(r, "stageId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid stage ID: must be a valid UUID")
		return
	}

	if err := h.pipelineService.RemoveStage(r.Context(), pipelineID, stageID); err != nil {
		respondDomainError(w, err, "stage")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PipelineHandler) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	result, err := h.pipelineService.ListOpportunities(r.Context(), params)
	if err != nil {
		h.logger.Error("failed to list opportunities", zap.Error(err))
		respondDomainError(w, err, "opportunities")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *PipelineHandler) GetOpportunity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID: must be a valid UUID")
		return
	}

	opportunity, err := h.pipelineService.GetOpportunity(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "opportunity")
		return
	}
	respondJSON(w, http.StatusOK, opportunity)
}

func (h *PipelineHandler) MoveOpportunity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID: must be a valid UUID")
		return
	}

	var req struct {
		PipelineID *uuid.UUID `json:"pipelineId,omitempty"`
		StageID    *uuid.UUID `json:"stageId,omitempty"`
		Amount     *float64   `json:"amount,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	opportunity, err := h.pipelineService.MoveOpportunity(r.Context(), id, req.PipelineID, req.StageID, req.Amount)
	if err != nil {
		respondDomainError(w, err, "opportunity")
		return
	}
	respondJSON(w, http.StatusOK, opportunity)
}

func (h *PipelineHandler) DeleteOpportunity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID: must be a valid UUID")
		return
	}

	if err := h.pipelineService.DeleteOpportunity(r.Context(), id); err != nil {
		respondDomainError(w, err, "opportunity")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
