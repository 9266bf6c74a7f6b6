// internal/app/bootstrap/routes.go
package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	adminfeature "github.com/dalemusser/studyhours/internal/app/features/admin"
	dashboardfeature "github.com/dalemusser/studyhours/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/studyhours/internal/app/features/errors"
	healthfeature "github.com/dalemusser/studyhours/internal/app/features/health"
	homefeature "github.com/dalemusser/studyhours/internal/app/features/home"
	loginfeature "github.com/dalemusser/studyhours/internal/app/features/login"
	logoutfeature "github.com/dalemusser/studyhours/internal/app/features/logout"
	registerfeature "github.com/dalemusser/studyhours/internal/app/features/register"
	uploadfeature "github.com/dalemusser/studyhours/internal/app/features/upload"
	appresources "github.com/dalemusser/studyhours/internal/app/resources"
	"github.com/dalemusser/studyhours/internal/app/store/identities"
	"github.com/dalemusser/studyhours/internal/app/system/auth"
	"github.com/dalemusser/studyhours/internal/app/system/uploads"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler wires the router. Every form posts through gorilla/csrf. The
// session cookie holds only the login ID; the identity is re-read from the
// store on each request so a vanished identity signs out at once.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}
	sessionMgr.SetUserFetcher(identities.NewFetcher(deps.Identities, logger))

	// Dev mode re-parses templates on every render.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		return nil, fmt.Errorf("template engine: %w", err)
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(
		chimw.Timeout(30*time.Second),
		middleware.CORSFromConfig(coreCfg),
		middleware.SecurityHeadersFromConfig(coreCfg),
		sessionMgr.LoadSessionUser,
		csrfProtect(appCfg, secure, logger),
	)

	checks := map[string]healthfeature.Check{}
	if deps.MongoClient != nil {
		checks["mongodb"] = healthfeature.MongoCheck(deps.MongoClient)
	}
	health := healthfeature.NewHandler(checks, logger)
	r.Mount("/health", healthfeature.Routes(health))
	healthfeature.MountRootEndpoints(r, health)

	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	r.Mount("/", homefeature.Routes(homefeature.NewHandler(logger)))
	r.Mount("/register", registerfeature.Routes(registerfeature.NewHandler(deps.Identities, errLog, logger)))
	r.Mount("/login", loginfeature.Routes(loginfeature.NewHandler(deps.Identities, sessionMgr, errLog, logger)))
	r.Mount("/logout", logoutfeature.Routes(logoutfeature.NewHandler(sessionMgr, logger)))

	upload := uploadfeature.NewHandler(uploads.NewService(deps.FileStorage, deps.Hours, logger), errLog, appCfg.MaxUploadSize, logger)
	r.Mount("/upload", uploadfeature.Routes(upload, sessionMgr))
	r.Get("/upload-success", upload.Success)

	r.Mount("/user-dashboard", dashboardfeature.Routes(dashboardfeature.NewHandler(deps.Hours, errLog, logger), sessionMgr))
	r.Mount("/admin", adminfeature.Routes(adminfeature.NewHandler(deps.Identities, deps.Hours, errLog, logger), sessionMgr))

	fallback := errorsfeature.NewHandler()
	r.NotFound(fallback.NotFound)
	r.MethodNotAllowed(fallback.MethodNotAllowed)

	return r, nil
}

// csrfProtect guards every unsafe method. Outside production the usual local
// dev origins are trusted so forms work over plain http.
func csrfProtect(appCfg AppConfig, secure bool, logger *zap.Logger) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("studyhours_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("csrf check failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(csrf.FailureReason(r)))
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	if !secure {
		opts = append(opts, csrf.TrustedOrigins([]string{"localhost:8080", "127.0.0.1:8080"}))
	}
	if appCfg.SessionDomain != "" {
		opts = append(opts, csrf.Domain(appCfg.SessionDomain))
	}
	return csrf.Protect([]byte(appCfg.CSRFKey), opts...)
}
