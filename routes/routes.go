package routes

import (
	"net/http"

	"github.com/brendenGit/Warbler/auth"
	"github.com/brendenGit/Warbler/handlers"
	"github.com/brendenGit/Warbler/logger"
	"github.com/brendenGit/Warbler/monitoring"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(home *handlers.HomeHandler, userHandler *handlers.UserHandler, messageHandler *handlers.MessageHandler, sessions *auth.SessionManager) http.Handler {
	router := mux.NewRouter()
	router.Use(monitoring.InstrumentHandler, logger.RequestLogger, sessions.Identify)

	login := sessions.RequireLogin

	router.HandleFunc("/", home.Home).Methods("GET")

	// Account routes
	router.HandleFunc("/signup", userHandler.SignupForm).Methods("GET")
	router.HandleFunc("/signup", userHandler.Signup).Methods("POST")
	router.HandleFunc("/login", userHandler.LoginForm).Methods("GET")
	router.HandleFunc("/login", userHandler.Login).Methods("POST")
	router.HandleFunc("/logout", userHandler.Logout).Methods("GET")

	// User routes
	router.HandleFunc("/users", userHandler.List).Methods("GET")
	router.HandleFunc("/users/profile", login(userHandler.EditProfileForm)).Methods("GET")
	router.HandleFunc("/users/profile", login(userHandler.EditProfile)).Methods("POST")
	router.HandleFunc("/users/{id:[0-9]+}", userHandler.Show).Methods("GET")
	router.HandleFunc("/users/{id:[0-9]+}/following", login(userHandler.ShowFollowing)).Methods("GET")
	router.HandleFunc("/users/{id:[0-9]+}/followers", login(userHandler.ShowFollowers)).Methods("GET")
	router.HandleFunc("/users/{id:[0-9]+}/likes", login(userHandler.ShowLikes)).Methods("GET")
	router.HandleFunc("/users/follow/{id:[0-9]+}", login(userHandler.Follow)).Methods("POST")
	router.HandleFunc("/users/stop-following/{id:[0-9]+}", login(userHandler.StopFollowing)).Methods("POST")
	router.HandleFunc("/users/add_like/{id:[0-9]+}", login(userHandler.AddLike)).Methods("POST")

	// Message routes
	router.HandleFunc("/messages/new", login(messageHandler.NewForm)).Methods("GET")
	router.HandleFunc("/messages/new", login(messageHandler.Create)).Methods("POST")
	router.HandleFunc("/messages/{id:[0-9]+}", messageHandler.Show).Methods("GET")
	router.HandleFunc("/messages/{id:[0-9]+}/delete", login(messageHandler.Delete)).Methods("POST")

	// Add metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Unmatched paths skip router middleware, so identify the caller here
	// for the layout.
	router.NotFoundHandler = sessions.Identify(http.HandlerFunc(home.NotFound))

	return router
}
