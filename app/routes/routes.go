package routes

import (
	"net/http"

	"inkwell/app/config"
	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// SetupRoutes wires repositories, services and controllers onto a router,
// using the provided Badger DB.
func SetupRoutes(db *badger.DB, cfg *config.Config, logger zerolog.Logger) (*mux.Router, error) {
	userRepo := repositories.NewBadgerUserRepository(db)
	categoryRepo := repositories.NewBadgerCategoryRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	sessionRepo := repositories.NewBadgerSessionRepository(db)

	authService, err := services.NewAuthService(userRepo, sessionRepo, cfg.Secret, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}
	postService := services.NewPostService(postRepo, commentRepo, categoryRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, postRepo, userRepo, postService)
	categoryService := services.NewCategoryService(categoryRepo, postService)
	userService := services.NewUserService(userRepo, postRepo, commentRepo, sessionRepo)

	templates := controllers.LoadTemplates(cfg.ViewsPath)
	authController := controllers.NewAuthController(authService, templates)
	postController := controllers.NewPostController(postService, templates, cfg.PageSize)
	commentController := controllers.NewCommentController(commentService)
	profileController := controllers.NewProfileController(userService, postService, templates, cfg.PageSize)
	categoryController := controllers.NewCategoryController(categoryService, postService, templates, cfg.PageSize)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.Metrics)
	router.Use(middleware.CurrentUser(authService))

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Prometheus metrics
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Auth web endpoints
	router.HandleFunc("/register", authController.ShowRegister).Methods("GET")
	router.HandleFunc("/register", authController.Register).Methods("POST")
	router.HandleFunc("/login", authController.ShowLogin).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("POST")

	// Web routes
	router.HandleFunc("/", postController.Index).Methods("GET")

	// Posts web endpoints
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.Handle("/new", middleware.RequireAuth(http.HandlerFunc(postController.New))).Methods("GET")
	posts.Handle("", middleware.RequireAuth(http.HandlerFunc(postController.Create))).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.Handle("/{id:[0-9]+}/edit", middleware.RequireAuth(http.HandlerFunc(postController.EditForm))).Methods("GET")
	posts.Handle("/{id:[0-9]+}/edit", middleware.RequireAuth(http.HandlerFunc(postController.Update))).Methods("POST")
	posts.Handle("/{id:[0-9]+}/delete", middleware.RequireAuth(http.HandlerFunc(postController.Delete))).Methods("POST")

	// Comments web endpoints
	posts.Handle("/{postId:[0-9]+}/comments", middleware.RequireAuth(http.HandlerFunc(commentController.Create))).Methods("POST")
	router.Handle("/comments/{id:[0-9]+}/edit", middleware.RequireAuth(http.HandlerFunc(commentController.Update))).Methods("POST")
	router.Handle("/comments/{id:[0-9]+}/delete", middleware.RequireAuth(http.HandlerFunc(commentController.Delete))).Methods("POST")

	// Profiles web endpoints
	router.Handle("/profile/edit", middleware.RequireAuth(http.HandlerFunc(profileController.EditForm))).Methods("GET")
	router.Handle("/profile/edit", middleware.RequireAuth(http.HandlerFunc(profileController.Update))).Methods("POST")
	router.HandleFunc("/users/{username}", profileController.Show).Methods("GET")

	// Categories web endpoints
	router.HandleFunc("/categories", categoryController.Index).Methods("GET")
	router.HandleFunc("/categories/{slug}", categoryController.Show).Methods("GET")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	// Auth API endpoints
	api.HandleFunc("/register", authController.Register).Methods("POST")
	api.HandleFunc("/login", authController.Login).Methods("POST")
	api.Handle("/logout", middleware.RequireAuth(http.HandlerFunc(authController.Logout))).Methods("POST")

	// Posts API endpoints
	apiPosts := api.PathPrefix("/posts").Subrouter()
	apiPosts.HandleFunc("", postController.Index).Methods("GET")
	apiPosts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	apiPosts.Handle("", middleware.RequireAuth(http.HandlerFunc(postController.Create))).Methods("POST")
	apiPosts.Handle("/{id:[0-9]+}", middleware.RequireAuth(http.HandlerFunc(postController.Update))).Methods("PUT")
	apiPosts.Handle("/{id:[0-9]+}", middleware.RequireAuth(http.HandlerFunc(postController.Delete))).Methods("DELETE")

	// Comments API endpoints
	apiPosts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Index).Methods("GET")
	apiPosts.Handle("/{postId:[0-9]+}/comments", middleware.RequireAuth(http.HandlerFunc(commentController.Create))).Methods("POST")
	api.Handle("/comments/{id:[0-9]+}", middleware.RequireAuth(http.HandlerFunc(commentController.Update))).Methods("PUT")
	api.Handle("/comments/{id:[0-9]+}", middleware.RequireAuth(http.HandlerFunc(commentController.Delete))).Methods("DELETE")

	// Profiles API endpoints
	api.HandleFunc("/users/{username}", profileController.Show).Methods("GET")
	api.Handle("/profile", middleware.RequireAuth(http.HandlerFunc(profileController.Update))).Methods("PUT")
	api.Handle("/profile", middleware.RequireAuth(http.HandlerFunc(profileController.Delete))).Methods("DELETE")

	// Categories API endpoints
	api.HandleFunc("/categories", categoryController.Index).Methods("GET")
	api.HandleFunc("/categories/{slug}", categoryController.Show).Methods("GET")
	api.Handle("/categories", middleware.RequireAuth(http.HandlerFunc(categoryController.Create))).Methods("POST")
	api.Handle("/categories/{id:[0-9]+}", middleware.RequireAuth(http.HandlerFunc(categoryController.Update))).Methods("PUT")
	api.Handle("/categories/{id:[0-9]+}", middleware.RequireAuth(http.HandlerFunc(categoryController.Delete))).Methods("DELETE")

	return router, nil
}
