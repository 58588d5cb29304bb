package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

// SubscriptionHandler handles HTTP requests for tracked subscriptions
type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
	logger              *zap.Logger
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService, logger: logger}
}

func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	filter := repository.SubscriptionFilter{}
	if status := r.URL.Query().Get("status"); status != "" {
		ss := domain.SubscriptionStatus(status)
		if !ss.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter.Status = &ss
	}
	ownerID, ok := parseOptionalUUID(r, "ownerId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid ownerId: must be a valid UUID")
		return
	}
	filter.OwnerID = ownerID
	teamID, ok := parseOptionalUUID(r, "teamId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid teamId: must be a valid UUID")
		return
	}
	filter.TeamID = teamID

	result, err := h.subscriptionService.List(r.Context(), params, filter)
	if err != nil {
		h.logger.Error("failed to list subscriptions", zap.Error(err))
		respondDomainError(w, err, "subscriptions")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subscription ID: must be a valid UUID")
		return
	}

	subscription, err := h.subscriptionService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "subscription")
		return
	}
	respondJSON(w, http.StatusOK, subscription)
}

func (h *SubscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSubscriptionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	subscription, err := h.subscriptionService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create subscription", zap.Error(err))
		respondDomainError(w, err, "subscription")
		return
	}

	w.Header().Set("Location", "/api/v1/subscriptions/"+subscription.ID.String())
	respondJSON(w, http.StatusCreated, subscription)
}

func (h *SubscriptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subscription ID: must be a valid UUID")
		return
	}

	var req domain.CreateSubscriptionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	subscription, err := h.subscriptionService.Update(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "subscription")
		return
	}
	respondJSON(w, http.StatusOK, subscription)
}

func (h *SubscriptionHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subscription ID: must be a valid UUID")
		return
	}

	var req struct {
		Status domain.SubscriptionStatus `json:"status" validate:"required"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.subscriptionService.ChangeStatus(r.Context(), id, req.Status); err != nil {
		respondDomainError(w, err, "subscription")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SubscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subscription ID: must be a valid UUID")
		return
	}

	if err := h.subscriptionService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "subscription")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Renew records a renewal and reactivates an expired subscription
func (h *SubscriptionHandler) Renew(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subscription ID: must be a valid UUID")
		return
	}

	var req domain.RenewSubscriptionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	renewal, err := h.subscriptionService.Renew(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "subscription")
		return
	}
	respondJSON(w, http.StatusCreated, renewal)
}

func (h *SubscriptionHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subscription ID: must be a valid UUID")
		return
	}

	var req domain.AddSubscriptionUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.subscriptionService.AddUser(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "subscription user")
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *SubscriptionHandler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	subscriptionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subscription ID: must be a valid UUID")
		return
	}
	profileID, err := uuid.Parse(chi.URLParam(r, "profileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile ID: must be a valid UUID")
		return
	}

	if err := h.subscriptionService.RemoveUser(r.Context(), subscriptionID, profileID); err != nil {
		respondDomainError(w, err, "subscription user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
