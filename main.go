package main

import (
	"net/http"

	"github.com/brendenGit/Warbler/auth"
	"github.com/brendenGit/Warbler/config"
	"github.com/brendenGit/Warbler/database"
	"github.com/brendenGit/Warbler/handlers"
	"github.com/brendenGit/Warbler/logger"
	"github.com/brendenGit/Warbler/repositories"
	"github.com/brendenGit/Warbler/routes"
	"github.com/brendenGit/Warbler/services"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logCloser := logger.InitLogger(cfg.LogLevel, cfg.LogFile)
	defer logCloser.Close()

	db, err := database.New(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	userRepo := repositories.NewUserRepository(db.DB)
	messageRepo := repositories.NewMessageRepository(db.DB)
	followRepo := repositories.NewFollowRepository(db.DB)
	likeRepo := repositories.NewLikeRepository(db.DB)

	userService := services.NewUserService(userRepo, followRepo, likeRepo)
	messageService := services.NewMessageService(messageRepo, likeRepo)
	sessions := auth.NewSessionManager(cfg.SessionSecret, userRepo)

	views, err := handlers.LoadViews()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load templates")
	}

	base := handlers.NewHandler(userService, messageService, sessions, views)
	router := routes.SetupRoutes(
		handlers.NewHomeHandler(base),
		handlers.NewUserHandler(base),
		handlers.NewMessageHandler(base),
		sessions,
	)

	logrus.WithFields(logrus.Fields{
		"port":   cfg.Port,
		"driver": cfg.DBDriver,
	}).Info("Server running")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}
