package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/studentlms/backend/middleware"
	"github.com/studentlms/backend/services"
	"github.com/studentlms/backend/utils"
	"go.uber.org/zap"
)

// CreateTutorRequest represents a request to open a tutor profile
type CreateTutorRequest struct {
	services.CreateTutorInput
	UserID string `json:"user_id,omitempty"`
}

// CreateTutoringRequestRequest represents a request to be matched with a tutor
type CreateTutoringRequestRequest struct {
	services.CreateTutorRequestInput
	StudentID string `json:"student_id,omitempty"`
}

// UpdateAvailabilityRequest toggles a tutor's availability
type UpdateAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

// SubjectSearchResponse is the payload for tutor subject searches
type SubjectSearchResponse struct {
	Results     interface{} `json:"results"`
	Count       int         `json:"count"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

// TutorHandler handles tutor HTTP requests
type TutorHandler struct {
	tutorService *services.TutorService
	logger       *zap.Logger
}

// NewTutorHandler creates a new TutorHandler
func NewTutorHandler(tutorService *services.TutorService, logger *zap.Logger) *TutorHandler {
	return &TutorHandler{
		tutorService: tutorService,
		logger:       logger,
	}
}

// HandleListTutors handles GET /api/tutors
func (h *TutorHandler) HandleListTutors(w http.ResponseWriter, r *http.Request) {
	var available *bool
	if raw := r.URL.Query().Get("available"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			_ = utils.WriteBadRequest(w, "Invalid available filter", nil)
			return
		}
		available = &parsed
	}

	tutors, err := h.tutorService.List(r.Context(), available, parseLimit(r))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, tutors)
}

// HandleListSubjects handles GET /api/tutors/subjects/list
func (h *TutorHandler) HandleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.tutorService.ListSubjects(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, subjects)
}

// HandleSearchBySubject handles GET /api/tutors/subject/{subject}
func (h *TutorHandler) HandleSearchBySubject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject := chi.URLParam(r, "subject")

	tutors, err := h.tutorService.SearchBySubject(ctx, subject, parseLimit(r))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	response := SubjectSearchResponse{
		Results: tutors,
		Count:   len(tutors),
	}
	if len(tutors) == 0 {
		response.Results = []struct{}{}
		// Offer what is actually on offer instead of a bare empty list
		if subjects, err := h.tutorService.ListSubjects(ctx); err == nil {
			response.Suggestions = subjects
		}
	}

	_ = utils.WriteOK(w, response)
}

// HandleGetTutor handles GET /api/tutors/{id}
func (h *TutorHandler) HandleGetTutor(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid tutor ID", nil)
		return
	}

	tutor, err := h.tutorService.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, tutor)
}

// HandleCreateTutor handles POST /api/tutors
func (h *TutorHandler) HandleCreateTutor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req CreateTutorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req.CreateTutorInput); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	userID, err := resolveActor(r, req.UserID)
	if err != nil {
		_ = utils.WriteBadRequest(w, "user_id is required", nil)
		return
	}

	tutor, err := h.tutorService.CreateProfile(ctx, req.CreateTutorInput, userID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, tutor)
}

// HandleUpdateAvailability handles PATCH /api/tutors/{id}/availability
func (h *TutorHandler) HandleUpdateAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid tutor ID", nil)
		return
	}

	var req UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.tutorService.SetAvailability(ctx, id, req.IsAvailable); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]interface{}{
		"id":           id,
		"is_available": req.IsAvailable,
	})
}

// HandleUpdateTutor handles PATCH /api/tutors/{id}
func (h *TutorHandler) HandleUpdateTutor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid tutor ID", nil)
		return
	}

	var req services.UpdateTutorInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	tutor, err := h.tutorService.Update(ctx, id, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, tutor)
}

// HandleDeleteTutor handles DELETE /api/tutors/{id}
func (h *TutorHandler) HandleDeleteTutor(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid tutor ID", nil)
		return
	}

	if err := h.tutorService.DeleteProfile(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}

// HandleListTutorRequests handles GET /api/tutors/requests/all
func (h *TutorHandler) HandleListTutorRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.tutorService.ListRequests(r.Context(), optionalQuery(r, "status"), parseLimit(r))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, requests)
}

// HandleCreateTutorRequest handles POST /api/tutors/requests
func (h *TutorHandler) HandleCreateTutorRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req CreateTutoringRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req.CreateTutorRequestInput); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	studentID, err := resolveActor(r, req.StudentID)
	if err != nil {
		_ = utils.WriteBadRequest(w, "student_id is required", nil)
		return
	}

	request, err := h.tutorService.CreateRequest(ctx, req.CreateTutorRequestInput, studentID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, request)
}
