package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/churrasapp/churrasapp-api/internal/config"
	"github.com/churrasapp/churrasapp-api/internal/domain/auth"
	"github.com/churrasapp/churrasapp-api/internal/domain/booking"
	"github.com/churrasapp/churrasapp-api/internal/domain/dashboard"
	"github.com/churrasapp/churrasapp-api/internal/domain/listing"
	"github.com/churrasapp/churrasapp-api/internal/domain/photo"
	"github.com/churrasapp/churrasapp-api/internal/domain/profile"
	"github.com/churrasapp/churrasapp-api/internal/domain/user"
	"github.com/churrasapp/churrasapp-api/internal/middleware"
	"github.com/churrasapp/churrasapp-api/internal/pkg/database"
	"github.com/churrasapp/churrasapp-api/internal/pkg/jwt"
	pkgresponse "github.com/churrasapp/churrasapp-api/internal/pkg/response"
	"github.com/churrasapp/churrasapp-api/internal/pkg/upload"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting ChurrasApp API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	uploadSvc := upload.NewService(&upload.Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		AccessKeySecret: cfg.R2AccessKeySecret,
		BucketName:      cfg.R2BucketName,
		PublicURL:       cfg.R2PublicURL,
	})

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	profileRepo := profile.NewRepository(db)
	listingRepo := listing.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	photoRepo := photo.NewRepository(db)

	// ---------- Services ----------
	statsCache := dashboard.NewCache(redis)

	authService := auth.NewService(userRepo, jwtService, redis, &authProfileAdapter{repo: profileRepo})
	profileService := profile.NewService(profileRepo, uploadSvc)
	listingService := listing.NewService(listingRepo, profileRepo)
	bookingService := booking.NewService(bookingRepo, profileRepo, listingRepo, statsCache)
	dashboardService := dashboard.NewService(bookingRepo, profileRepo, statsCache)
	photoService := photo.NewService(photoRepo, profileRepo, uploadSvc, redis)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	profileHandler := profile.NewHandler(profileService)
	listingHandler := listing.NewHandler(listingService, uploadSvc)
	bookingHandler := booking.NewHandler(bookingService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	photoHandler := photo.NewHandler(photoService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/profiles", profileHandler.Routes(authMiddleware))
		r.Mount("/listings", listingHandler.Routes(authMiddleware))
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware))
		r.Mount("/dashboard", dashboardHandler.Routes(authMiddleware))
		r.Mount("/photos", photoHandler.Routes(authMiddleware))

		r.Get("/profiles/{id}/listings", listingHandler.ListByProfessional)
		r.Get("/profiles/{id}/photos", photoHandler.ListByProfile)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}

// authProfileAdapter adapts profile.Repository to auth.ProfileRepository
type authProfileAdapter struct {
	repo profile.Repository
}

func (a *authProfileAdapter) Create(ctx context.Context, authProfile *auth.Profile) error {
	p := &profile.Profile{
		ID:        authProfile.ID,
		UserID:    authProfile.UserID,
		Role:      user.Role(authProfile.Role),
		Name:      authProfile.Name,
		Email:     authProfile.Email,
		Phone:     sql.NullString{String: authProfile.Phone, Valid: authProfile.Phone != ""},
		Location:  sql.NullString{String: authProfile.Location, Valid: authProfile.Location != ""},
		CreatedAt: authProfile.CreatedAt,
		UpdatedAt: authProfile.UpdatedAt,
	}
	return a.repo.Create(ctx, p)
}
