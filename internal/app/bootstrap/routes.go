// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminsetupfeature "github.com/dalemusser/folio/internal/app/features/adminsetup"
	contactfeature "github.com/dalemusser/folio/internal/app/features/contact"
	errorsfeature "github.com/dalemusser/folio/internal/app/features/errors"
	experiencefeature "github.com/dalemusser/folio/internal/app/features/experience"
	healthfeature "github.com/dalemusser/folio/internal/app/features/health"
	loginfeature "github.com/dalemusser/folio/internal/app/features/login"
	messagesfeature "github.com/dalemusser/folio/internal/app/features/messages"
	projectsfeature "github.com/dalemusser/folio/internal/app/features/projects"
	settingsfeature "github.com/dalemusser/folio/internal/app/features/settings"
	skillsfeature "github.com/dalemusser/folio/internal/app/features/skills"
	"github.com/dalemusser/folio/internal/app/system/auth"
	"github.com/dalemusser/folio/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root router. Every response, including
// unknown routes, is JSON.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	tokens := auth.NewTokens([]byte(appCfg.SessionKey))
	authSvc := auth.NewService(db, tokens, appCfg.ResetKey, logger)
	if authSvc.ResetEnabled() {
		logger.Warn("admin reset endpoint is enabled; anyone holding reset_key can delete the admin account")
	}

	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, authSvc, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	proxies, err := ratelimit.ParseTrustedProxies(appCfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	loginLimiter := newLimiter(appCfg, deps, "login", appCfg.LoginRateLimit)
	contactLimiter := newLimiter(appCfg, deps, "contact", appCfg.ContactRateLimit)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(ratelimit.RealIP(proxies))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Reset-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Puts the admin id of a valid bearer token or cookie into context.
	r.Use(sessionMgr.LoadSession)

	r.NotFound(errorsfeature.NotFound)
	r.MethodNotAllowed(errorsfeature.NotFound)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		adminHandler := adminsetupfeature.NewHandler(authSvc, db, loginLimiter, errLog, logger)
		api.Mount("/admin", adminsetupfeature.Routes(adminHandler))

		loginHandler := loginfeature.NewHandler(authSvc, sessionMgr, loginLimiter, errLog, logger)
		api.Mount("/auth", loginfeature.Routes(loginHandler))

		projectsHandler := projectsfeature.NewHandler(db, errLog, logger)
		api.Mount("/projects", projectsfeature.Routes(projectsHandler))

		experienceHandler := experiencefeature.NewHandler(db, errLog, logger)
		api.Mount("/experience", experiencefeature.Routes(experienceHandler))

		skillsHandler := skillsfeature.NewHandler(db, appCfg.ProficiencyPolicy, errLog, logger)
		api.Mount("/skills", skillsfeature.Routes(skillsHandler))

		settingsHandler := settingsfeature.NewHandler(db, deps.Blobs, appCfg.SettingsMaxBlobBytes, errLog, logger)
		api.Mount("/settings", settingsfeature.Routes(settingsHandler))

		contactHandler := contactfeature.NewHandler(db, contactLimiter, errLog, logger)
		api.Mount("/contact", contactfeature.Routes(contactHandler))

		messagesHandler := messagesfeature.NewHandler(db, errLog, logger)
		api.Mount("/messages", messagesfeature.Routes(messagesHandler))
	})

	return r, nil
}

// newLimiter shares limits through Redis when configured, otherwise keeps
// them per process.
func newLimiter(appCfg AppConfig, deps DBDeps, name string, limit int) ratelimit.Limiter {
	if deps.Redis != nil {
		return ratelimit.NewRedis(deps.Redis, "folio:ratelimit:"+name, limit, appCfg.RateLimitWindow)
	}
	return ratelimit.NewMemory(limit, appCfg.RateLimitWindow)
}
