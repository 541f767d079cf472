package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/studentlms/backend/middleware"
	"github.com/studentlms/backend/services"
	"github.com/studentlms/backend/utils"
	"go.uber.org/zap"
)

// CategoryHandler handles subject category HTTP requests
type CategoryHandler struct {
	categoryService *services.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *services.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// HandleListCategories handles GET /api/categories
func (h *CategoryHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, categories)
}

// HandleListCategoriesWithCounts handles GET /api/categories/with-counts
func (h *CategoryHandler) HandleListCategoriesWithCounts(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListWithCounts(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, categories)
}

// HandleGetCategory handles GET /api/categories/{id}
func (h *CategoryHandler) HandleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid category ID", nil)
		return
	}

	category, err := h.categoryService.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, category)
}

// HandleCreateCategory handles POST /api/categories
func (h *CategoryHandler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req services.CreateCategoryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	category, err := h.categoryService.Create(ctx, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, category)
}
