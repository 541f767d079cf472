package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/studentlms/backend/middleware"
	"github.com/studentlms/backend/services"
	"github.com/studentlms/backend/utils"
	"go.uber.org/zap"
)

// CreateResourceRequestRequest represents a request to ask for a resource
type CreateResourceRequestRequest struct {
	services.CreateRequestInput
	RequestedBy string `json:"requested_by,omitempty"`
}

// RequestHandler handles resource request HTTP requests
type RequestHandler struct {
	requestService *services.RequestService
	logger         *zap.Logger
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(requestService *services.RequestService, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		logger:         logger,
	}
}

// HandleListRequests handles GET /api/requests
func (h *RequestHandler) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.List(r.Context(), optionalQuery(r, "status"), parseLimit(r))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, requests)
}

// HandleGetRequest handles GET /api/requests/{id}
func (h *RequestHandler) HandleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request ID", nil)
		return
	}

	request, err := h.requestService.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, request)
}

// HandleListUserRequests handles GET /api/requests/user/{user_id}
func (h *RequestHandler) HandleListUserRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "user_id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid user ID", nil)
		return
	}

	requests, err := h.requestService.ListByUser(r.Context(), userID, parseLimit(r))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, requests)
}

// HandleCreateRequest handles POST /api/requests
func (h *RequestHandler) HandleCreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req CreateResourceRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req.CreateRequestInput); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	requestedBy, err := resolveActor(r, req.RequestedBy)
	if err != nil {
		_ = utils.WriteBadRequest(w, "requested_by is required", nil)
		return
	}

	request, err := h.requestService.Create(ctx, req.CreateRequestInput, requestedBy)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, request)
}

// HandleUpdateRequestStatus handles PATCH /api/requests/{id}/status
func (h *RequestHandler) HandleUpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request ID", nil)
		return
	}

	var req services.UpdateRequestStatusInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	request, err := h.requestService.UpdateStatus(ctx, id, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, request)
}

// HandleUpdateRequest handles PATCH /api/requests/{id}
func (h *RequestHandler) HandleUpdateRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request ID", nil)
		return
	}

	var req services.UpdateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	request, err := h.requestService.Update(ctx, id, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, request)
}

// HandleDeleteRequest handles DELETE /api/requests/{id}
func (h *RequestHandler) HandleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request ID", nil)
		return
	}

	if err := h.requestService.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}
