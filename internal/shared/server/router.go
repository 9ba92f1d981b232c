package server

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "taxprep-backend/internal/auth"
	"taxprep-backend/internal/interview"
	"taxprep-backend/internal/sessions"
	"taxprep-backend/internal/shared/config"
	"taxprep-backend/internal/shared/metrics"
	"taxprep-backend/internal/shared/server/middleware"
	"taxprep-backend/internal/shared/server/respond"
	"taxprep-backend/internal/shared/storage/db"
	"taxprep-backend/internal/shared/telemetry"
	"taxprep-backend/internal/taxcalc"
	"taxprep-backend/internal/taxpayers"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
	)

	// Question catalog. A broken override file falls back to the built-in
	// catalog rather than refusing to serve.
	catalog, err := interview.Load(cfg.CatalogPath)
	if err != nil {
		telemetry.Warn("catalog.fallback", map[string]any{"error": err.Error()})
	}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			telemetry.Warn("db.unavailable", map[string]any{"error": err.Error()})
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				telemetry.Warn("db.migrations_failed", map[string]any{"error": err.Error()})
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var sessionRepo sessions.Repo
	if sqlDB != nil {
		sessionRepo = &sessions.PGRepo{DB: sqlDB}
	} else {
		sessionRepo = sessions.NewMemoryRepo()
	}
	sessionSvc := &sessions.Service{Catalog: catalog, Repo: sessionRepo, TaxYear: cfg.TaxYear}
	sessionHandler := sessions.NewHandler(sessionSvc)

	var profileRepo taxpayers.Repo
	if sqlDB != nil {
		profileRepo = &taxpayers.PGRepo{DB: sqlDB}
	} else {
		profileRepo = taxpayers.NewMemoryRepo()
	}
	profileSvc := taxpayers.NewService(profileRepo)
	profileHandler := taxpayers.NewHandler(profileSvc)

	calcHandler := taxcalc.NewHandler(profileSvc)
	googleAuthSvc := googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	googleAuthSvc.RegisterRoutes(api)
	sessionHandler.RegisterRoutes(api)
	profileHandler.RegisterRoutes(api)
	calcHandler.Register(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
