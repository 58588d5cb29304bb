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

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(productService *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, logger: logger}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	collectionID, ok := parseOptionalUUID(r, "collectionId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid collectionId: must be a valid UUID")
		return
	}

	result, err := h.productService.List(r.Context(), params, collectionID)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		respondDomainError(w, err, "products")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID: must be a valid UUID")
		return
	}

	product, err := h.productService.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.productService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		respondDomainError(w, err, "product")
		return
	}

	w.Header().Set("Location", "/api/v1/products/"+product.ID.String())
	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID: must be a valid UUID")
		return
	}

	var req domain.CreateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.productService.Update(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID: must be a valid UUID")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) AddVariant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID: must be a valid UUID")
		return
	}

	var req domain.CreateProductVariantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	variant, err := h.productService.AddVariant(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, err, "product variant")
		return
	}
	respondJSON(w, http.StatusCreated, variant)
}

func (h *ProductHandler) RemoveVariant(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID: must be a valid UUID")
		return
	}
	variantID, err := uuid.Parse(chi.URLParam(r, "variantId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid variant ID: must be a valid UUID")
		return
	}

	if err := h.productService.RemoveVariant(r.Context(), productID, variantID); err != nil {
		respondDomainError(w, err, "product variant")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.productService.ListCollections(r.Context())
	if err != nil {
		h.logger.Error("failed to list collections", zap.Error(err))
		respondDomainError(w, err, "collections")
		return
	}
	respondJSON(w, http.StatusOK, collections)
}

func (h *ProductHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	collection, err := h.productService.CreateCollection(r.Context(), req.Name, req.Description)
	if err != nil {
		respondDomainError(w, err, "collection")
		return
	}
	respondJSON(w, http.StatusCreated, collection)
}

func (h *ProductHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid collection ID: must be a valid UUID")
		return
	}

	if err := h.productService.DeleteCollection(r.Context(), id); err != nil {
		respondDomainError(w, err, "collection")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
