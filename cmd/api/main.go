package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"berrystore/internal/config"
	"berrystore/internal/database"
	"berrystore/internal/domain"
	"berrystore/internal/middleware"
	"berrystore/internal/modules/activity"
	"berrystore/internal/modules/ai"
	"berrystore/internal/modules/auth"
	"berrystore/internal/modules/product"
	"berrystore/internal/modules/upload"
	jwtsvc "berrystore/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db, &domain.User{}, &domain.Product{}, &domain.Activity{}); err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	userRepo := auth.NewUserRepository(db)
	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	var authenticator auth.Authenticator
	switch cfg.AuthMode {
	case "basic":
		authenticator = auth.NewBasicAuthenticator(authService)
	case "remote":
		authenticator = auth.NewRemoteAuthenticator(cfg.AuthVerifyURL)
	default:
		authenticator = auth.NewJWTAuthenticator(j, userRepo)
	}

	receiver, err := upload.NewReceiver(cfg.UploadRoot)
	if err != nil {
		log.Fatal(err)
	}
	publicBase := "/uploads/" + filepath.Base(cfg.UploadRoot)
	transcoder := upload.NewTranscoder(cfg.UploadRoot, publicBase)
	uploadService := upload.NewService(receiver, transcoder, cfg.UploadTimeout)
	uploadHandler := upload.NewHandler(uploadService)

	productService := product.NewService(product.NewRepository(db))
	productHandler := product.NewHandler(productService)

	activityService := activity.NewService(activity.NewRepository(db))
	activityHandler := activity.NewHandler(activityService)

	aiHandler := ai.NewHandler(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.CORS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Berrystore API"})
	})

	// Transcoded assets are served read-only from the upload root's parent.
	r.Static("/uploads", filepath.Dir(cfg.UploadRoot))

	authHandler.RegisterRoutes(r)

	api := r.Group("/api")
	{
		productHandler.RegisterPublicRoutes(api)
		activityHandler.RegisterPublicRoutes(api)

		protected := api.Group("/")
		protected.Use(middleware.RequireAuth(authenticator))
		{
			productHandler.RegisterProtectedRoutes(protected)
			uploadHandler.RegisterRoutes(protected)
			activityHandler.RegisterProtectedRoutes(protected)
			aiHandler.RegisterRoutes(protected)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("server listening on :%s (auth_mode=%s)", cfg.Port, cfg.AuthMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
