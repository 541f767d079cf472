package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/studentlms/backend/middleware"
	"github.com/studentlms/backend/services"
	"github.com/studentlms/backend/utils"
	"go.uber.org/zap"
)

// CreateResourceRequest represents a request to share a resource
type CreateResourceRequest struct {
	services.CreateResourceInput
	AuthorID string `json:"author_id,omitempty"`
}

// SearchSuggestion is attached to empty search results so the client
// can nudge the user toward opening a resource request instead.
type SearchSuggestion struct {
	Message string `json:"message"`
	Action  string `json:"action"`
}

// SearchResultsResponse is the payload for resource searches
type SearchResultsResponse struct {
	Results    interface{}       `json:"results"`
	Count      int               `json:"count"`
	Suggestion *SearchSuggestion `json:"suggestion,omitempty"`
}

// ResourceHandler handles learning resource HTTP requests
type ResourceHandler struct {
	resourceService *services.ResourceService
	logger          *zap.Logger
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(resourceService *services.ResourceService, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
		logger:          logger,
	}
}

// HandleListResources handles GET /api/resources
func (h *ResourceHandler) HandleListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.resourceService.List(r.Context(), parseLimit(r))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, resources)
}

// HandleSearchResources handles GET /api/resources/search
func (h *ResourceHandler) HandleSearchResources(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	filters := services.SearchFilters{
		CategoryID: optionalQuery(r, "category_id"),
		FileType:   optionalQuery(r, "file_type"),
	}

	resources, err := h.resourceService.Search(r.Context(), query, filters, parseLimit(r))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	response := SearchResultsResponse{
		Results: resources,
		Count:   len(resources),
	}
	if len(resources) == 0 {
		response.Results = []struct{}{}
		response.Suggestion = &SearchSuggestion{
			Message: "No resources matched your search. You can request this resource from the community.",
			Action:  "create_request",
		}
	}

	_ = utils.WriteOK(w, response)
}

// HandleGetResource handles GET /api/resources/{id}
func (h *ResourceHandler) HandleGetResource(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid resource ID", nil)
		return
	}

	resource, err := h.resourceService.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, resource)
}

// HandleListByCategory handles GET /api/resources/category/{category_id}
func (h *ResourceHandler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseIDParam(r, "category_id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid category ID", nil)
		return
	}

	resources, err := h.resourceService.ListByCategory(r.Context(), categoryID, parseLimit(r))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, resources)
}

// HandleCreateResource handles POST /api/resources
func (h *ResourceHandler) HandleCreateResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req.CreateResourceInput); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	authorID, err := resolveActor(r, req.AuthorID)
	if err != nil {
		_ = utils.WriteBadRequest(w, "author_id is required", nil)
		return
	}

	resource, err := h.resourceService.Create(ctx, req.CreateResourceInput, authorID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, resource)
}

// HandleDownloadResource handles POST /api/resources/{id}/download
func (h *ResourceHandler) HandleDownloadResource(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid resource ID", nil)
		return
	}

	resource, err := h.resourceService.Download(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]interface{}{
		"file_url":       resource.FileURL,
		"download_count": resource.DownloadCount,
	})
}

// HandleUpdateResource handles PATCH /api/resources/{id}
func (h *ResourceHandler) HandleUpdateResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid resource ID", nil)
		return
	}

	var req services.UpdateResourceInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	resource, err := h.resourceService.Update(ctx, id, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, resource)
}

// HandleDeleteResource handles DELETE /api/resources/{id}
func (h *ResourceHandler) HandleDeleteResource(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid resource ID", nil)
		return
	}

	if err := h.resourceService.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}
