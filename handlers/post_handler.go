package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/studentlms/backend/middleware"
	"github.com/studentlms/backend/services"
	"github.com/studentlms/backend/utils"
	"go.uber.org/zap"
)

// CreatePostRequest represents a request to publish a community post
type CreatePostRequest struct {
	services.CreatePostInput
	AuthorID string `json:"author_id,omitempty"`
}

// PostHandler handles community post HTTP requests
type PostHandler struct {
	postService *services.PostService
	logger      *zap.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// HandleListPosts handles GET /api/posts
func (h *PostHandler) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	filters := services.PostFilters{
		PostType:   optionalQuery(r, "post_type"),
		CategoryID: optionalQuery(r, "category_id"),
	}

	posts, err := h.postService.List(r.Context(), filters, parseLimit(r))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, posts)
}

// HandleGetPost handles GET /api/posts/{id}
func (h *PostHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid post ID", nil)
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, post)
}

// HandleListPostsByAuthor handles GET /api/posts/author/{author_id}
func (h *PostHandler) HandleListPostsByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := parseIDParam(r, "author_id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid author ID", nil)
		return
	}

	posts, err := h.postService.ListByAuthor(r.Context(), authorID, parseLimit(r))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, posts)
}

// HandleCreatePost handles POST /api/posts
func (h *PostHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req.CreatePostInput); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	authorID, err := resolveActor(r, req.AuthorID)
	if err != nil {
		_ = utils.WriteBadRequest(w, "author_id is required", nil)
		return
	}

	post, err := h.postService.Create(ctx, req.CreatePostInput, authorID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, post)
}

// HandleUpdatePost handles PATCH /api/posts/{id}
func (h *PostHandler) HandleUpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid post ID", nil)
		return
	}

	var req services.UpdatePostInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	post, err := h.postService.Update(ctx, id, req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, post)
}

// HandleDeletePost handles DELETE /api/posts/{id}
func (h *PostHandler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid post ID", nil)
		return
	}

	if err := h.postService.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}
