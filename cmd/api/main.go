package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omspos/oms-api/internal/config"
	"github.com/omspos/oms-api/internal/domain/auth"
	"github.com/omspos/oms-api/internal/domain/dashboard"
	"github.com/omspos/oms-api/internal/domain/operator"
	"github.com/omspos/oms-api/internal/domain/outlet"
	"github.com/omspos/oms-api/internal/domain/pos"
	"github.com/omspos/oms-api/internal/domain/role"
	"github.com/omspos/oms-api/internal/domain/settings"
	"github.com/omspos/oms-api/internal/domain/terminal"
	"github.com/omspos/oms-api/internal/domain/user"
	"github.com/omspos/oms-api/internal/middleware"
	"github.com/omspos/oms-api/internal/pkg/database"
	"github.com/omspos/oms-api/internal/pkg/jwt"
	pkgresponse "github.com/omspos/oms-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting OMS API")

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

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	roleRepo := role.NewRepository(db)
	operatorRepo := operator.NewRepository(db)
	outletRepo := outlet.NewRepository(db)
	terminalRepo := terminal.NewRepository(db)
	posRepo := pos.NewRepository(db)
	dashboardRepo := dashboard.NewRepository(db)
	settingsRepo := settings.NewRepository(db)

	// ---------- Services ----------
	roleService := role.NewService(roleRepo)
	operatorService := operator.NewService(operatorRepo)
	outletService := outlet.NewService(outletRepo)
	terminalService := terminal.NewService(terminalRepo, outletService)
	posService := pos.NewService(posRepo)
	dashboardService := dashboard.NewService(dashboardRepo)
	settingsService := settings.NewService(settingsRepo, redis)

	roleDirectory := &roleDirectoryAdapter{repo: roleRepo}
	userService := user.NewService(userRepo, roleDirectory, outletService)

	credentials := &credentialStoreAdapter{repo: userRepo}
	authService := auth.NewService(credentials, jwtService, redis)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	roleHandler := role.NewHandler(roleService)
	operatorHandler := operator.NewHandler(operatorService)
	outletHandler := outlet.NewHandler(outletService)
	terminalHandler := terminal.NewHandler(terminalService)
	posHandler := pos.NewHandler(posService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	settingsHandler := settings.NewHandler(settingsService)

	authMiddleware := middleware.Auth(jwtService, userRepo)
	loginGate := middleware.IPAllow(settingsService, cfg.IPAllowEnforced)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware, loginGate))
		r.Mount("/users", userHandler.Routes(authMiddleware))
		r.Mount("/roles", roleHandler.Routes(authMiddleware))
		r.Mount("/permissions", roleHandler.PermissionRoutes(authMiddleware))
		r.Mount("/operators", operatorHandler.Routes(authMiddleware))
		r.Mount("/outlets", outletHandler.Routes(authMiddleware))
		r.Mount("/terminals", terminalHandler.Routes(authMiddleware))
		r.Mount("/pos", posHandler.Routes(authMiddleware))
		r.Mount("/dashboard", dashboardHandler.Routes(authMiddleware))
		r.Mount("/settings", settingsHandler.Routes(authMiddleware))
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

// Adapter implementations to bridge interface mismatches

// roleDirectoryAdapter adapts role.Repository to user.RoleDirectory
type roleDirectoryAdapter struct {
	repo role.Repository
}

func (a *roleDirectoryAdapter) GetRoleName(ctx context.Context, roleID uuid.UUID) (string, error) {
	r, err := a.repo.GetByID(ctx, roleID)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", nil
	}
	return r.Name, nil
}

// credentialStoreAdapter adapts user.Repository to auth.CredentialStore
type credentialStoreAdapter struct {
	repo user.Repository
}

func (a *credentialStoreAdapter) FindByUsername(ctx context.Context, username string) (*auth.Credential, error) {
	u, err := a.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return toCredential(u), nil
}

func (a *credentialStoreAdapter) FindByID(ctx context.Context, id uuid.UUID) (*auth.Credential, error) {
	u, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return toCredential(u), nil
}

func toCredential(u *user.User) *auth.Credential {
	return &auth.Credential{
		UserID:       u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.RoleName,
		OperatorID:   u.OperatorID,
		OutletID:     u.OutletID,
	}
}
