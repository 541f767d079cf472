package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/studentlms/backend/app"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", deps.HealthHandler.HandleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.AuthHandler.HandleRegister)
			r.Post("/login", deps.AuthHandler.HandleLogin)
			r.Post("/logout", deps.AuthHandler.HandleLogout)

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAuth)
				r.Get("/me", deps.AuthHandler.HandleMe)
				r.Get("/verify", deps.AuthHandler.HandleVerify)
				r.Post("/change-password", deps.AuthHandler.HandleChangePassword)
			})
		})

		// TODO: mutation routes below run without RequireAuth so existing
		// clients keep working; once they all send bearer tokens, move the
		// POST/PATCH/DELETE handlers behind RequireAuth and drop the body
		// actor fallback in the handlers.
		r.Route("/resources", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.OptionalAuth)
			r.Get("/search", deps.ResourceHandler.HandleSearchResources)
			r.Get("/", deps.ResourceHandler.HandleListResources)
			r.Post("/", deps.ResourceHandler.HandleCreateResource)
			r.Get("/category/{category_id}", deps.ResourceHandler.HandleListByCategory)
			r.Get("/{id}", deps.ResourceHandler.HandleGetResource)
			r.Post("/{id}/download", deps.ResourceHandler.HandleDownloadResource)
			r.Patch("/{id}", deps.ResourceHandler.HandleUpdateResource)
			r.Delete("/{id}", deps.ResourceHandler.HandleDeleteResource)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.OptionalAuth)
			r.Get("/", deps.RequestHandler.HandleListRequests)
			r.Post("/", deps.RequestHandler.HandleCreateRequest)
			r.Get("/user/{user_id}", deps.RequestHandler.HandleListUserRequests)
			r.Get("/{id}", deps.RequestHandler.HandleGetRequest)
			r.Patch("/{id}/status", deps.RequestHandler.HandleUpdateRequestStatus)
			r.Patch("/{id}", deps.RequestHandler.HandleUpdateRequest)
			r.Delete("/{id}", deps.RequestHandler.HandleDeleteRequest)
		})

		r.Route("/tutors", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.OptionalAuth)
			r.Get("/", deps.TutorHandler.HandleListTutors)
			r.Post("/", deps.TutorHandler.HandleCreateTutor)
			r.Get("/subjects/list", deps.TutorHandler.HandleListSubjects)
			r.Get("/subject/{subject}", deps.TutorHandler.HandleSearchBySubject)
			r.Get("/requests/all", deps.TutorHandler.HandleListTutorRequests)
			r.Post("/requests", deps.TutorHandler.HandleCreateTutorRequest)
			r.Get("/{id}", deps.TutorHandler.HandleGetTutor)
			r.Patch("/{id}/availability", deps.TutorHandler.HandleUpdateAvailability)
			r.Patch("/{id}", deps.TutorHandler.HandleUpdateTutor)
			r.Delete("/{id}", deps.TutorHandler.HandleDeleteTutor)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.OptionalAuth)
			r.Get("/", deps.PostHandler.HandleListPosts)
			r.Post("/", deps.PostHandler.HandleCreatePost)
			r.Get("/author/{author_id}", deps.PostHandler.HandleListPostsByAuthor)
			r.Get("/{id}", deps.PostHandler.HandleGetPost)
			r.Patch("/{id}", deps.PostHandler.HandleUpdatePost)
			r.Delete("/{id}", deps.PostHandler.HandleDeletePost)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.OptionalAuth)
			r.Get("/", deps.CategoryHandler.HandleListCategories)
			r.Post("/", deps.CategoryHandler.HandleCreateCategory)
			r.Get("/with-counts", deps.CategoryHandler.HandleListCategoriesWithCounts)
			r.Get("/{id}", deps.CategoryHandler.HandleGetCategory)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.OptionalAuth)
			r.Get("/", deps.UserHandler.HandleListUsers)
			r.Post("/", deps.UserHandler.HandleCreateUser)
			r.Get("/email/{email}", deps.UserHandler.HandleGetUserByEmail)
			r.Get("/{id}", deps.UserHandler.HandleGetUser)
			r.Patch("/{id}", deps.UserHandler.HandleUpdateUser)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"endpoint not found"}`))
	})

	return r
}
