package main

import (
	"log"
	"net/http"
	"os"

	"campusmarket/docs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"campusmarket/internal/auth"
	"campusmarket/internal/cache"
	"campusmarket/internal/config"
	"campusmarket/internal/db"
	"campusmarket/internal/handler"
	"campusmarket/internal/model"
	"campusmarket/internal/repository"
	"campusmarket/internal/router"
	"campusmarket/internal/service"
)

// @title Campus Marketplace API
// @version 1.0
// @description REST backend for a campus marketplace: JWT auth, user profiles and listing CRUD.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Missing .env is fine; plain environment variables win either way.
	_ = godotenv.Load()

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.Listing{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: failed to drop table (may not exist): %v", err)
			}
		}
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Listing{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	listingRepo := repository.NewListingRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)

	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, listingRepo)
	listingService := service.NewListingService(listingRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	listingHandler := handler.NewListingHandler(listingService)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, authHandler, userHandler, listingHandler, listingService)

	// Default serves swagger relative to the request host; override for
	// deployments behind a proxy or mapped port.
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	log.Printf("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	log.Printf("Campus marketplace listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
