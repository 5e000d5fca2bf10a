package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"spendlog/internal/cache"
	"spendlog/internal/config"
	"spendlog/internal/db"
	"spendlog/internal/handler"
	"spendlog/internal/model"
	"spendlog/internal/repository"
	"spendlog/internal/router"
	"spendlog/internal/service"
	"spendlog/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	renderer, err := handler.NewTemplateRenderer()
	if err != nil {
		logrus.Fatalf("templates: %v", err)
	}
	e.Renderer = renderer

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logrus.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Expense{},
	); err != nil {
		logrus.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	// Initialize session components
	sessionManager := session.NewManager(cfg.SessionSecret)
	sessionStore := session.NewStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessionManager, sessionStore)
	expenseService := service.NewExpenseService(expenseRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.SecureCookies)
	expenseHandler := handler.NewExpenseHandler(expenseService, sessionStore)

	// Register routes
	router.Register(e, cfg, authService, authHandler, expenseHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logrus.Fatalf("server start: %v", err)
	}
}
