package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/climblog/internal/devserver/service"
	"github.com/aussiebroadwan/climblog/internal/devserver/store"
	"github.com/aussiebroadwan/climblog/pkg/httpx"
	"github.com/aussiebroadwan/climblog/pkg/jwtx"
	"github.com/aussiebroadwan/climblog/pkg/slogx"

	_ "github.com/aussiebroadwan/climblog/api/devserver" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits are the rate limits applied per route group.
type Limits struct {
	Login    httpx.RateLimitConfig
	Register httpx.RateLimitConfig
	Public   httpx.RateLimitConfig
}

// DefaultLimits reads DEVSERVER_RATELIMIT_{LOGIN,REGISTER,PUBLIC}_* over the
// built-in defaults.
func DefaultLimits() Limits {
	return Limits{
		Login:    httpx.RateLimitFromEnv("LOGIN", httpx.StrictLimit),
		Register: httpx.RateLimitFromEnv("REGISTER", httpx.StrictLimit),
		Public:   httpx.RateLimitFromEnv("PUBLIC", httpx.PublicLimit),
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *httpx.Metrics
	limits       Limits

	store          store.Store
	AuthService    *service.AuthService
	ClimbService   *service.ClimbService
	AttemptService *service.AttemptService
	CatalogService *service.CatalogService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	metrics *httpx.Metrics,
	limits Limits,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      metrics,
		limits:       limits,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerClimbs()
	r.registerAttempts()
	r.registerCatalog()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Climblog Development API
//	@version		0.1.0
//	@description	Local stand-in for the climbing tracker API. Access tokens are EdDSA-signed JWTs valid for 15 minutes with no refresh.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:5000
//	@BasePath		/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern, counted in the request metrics under
// the same pattern.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	if r.metrics != nil {
		mws = append([]httpx.Middleware{r.metrics.Middleware(pattern)}, mws...)
	}
	r.Mux.Handle(pattern, httpx.Chain(h, mws...))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Brute force on one account is bounded by IP + username
	r.handle("POST /login", http.HandlerFunc(h.HandleLogin),
		httpx.RateLimitByIPAndJSONField(r.limits.Login, "username"),
	)
	r.handle("POST /register", http.HandlerFunc(h.HandleRegister),
		httpx.RateLimitByIP(r.limits.Register),
	)

	r.handle("GET /logout", http.HandlerFunc(h.HandleLogout),
		httpx.AuthnMiddleware(r.verifier),
	)
	r.handle("DELETE /delete", http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
	)
}

func (r *Router) registerClimbs() {
	h := &ClimbsHandler{ClimbService: r.ClimbService, AuthService: r.AuthService}

	r.handle("GET /climbs", http.HandlerFunc(h.HandleList),
		httpx.RateLimitByIP(r.limits.Public),
	)
	r.handle("POST /climbs", http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
	)
}

func (r *Router) registerAttempts() {
	h := &AttemptsHandler{AttemptService: r.AttemptService, AuthService: r.AuthService}

	r.handle("GET /attempts", http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
	)
	r.handle("POST /attempts", http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
	)
}

func (r *Router) registerCatalog() {
	h := &CatalogHandler{CatalogService: r.CatalogService}

	public := httpx.RateLimitByIP(r.limits.Public)
	r.handle("GET /gyms", http.HandlerFunc(h.HandleGyms), public)
	r.handle("GET /learn/styles", http.HandlerFunc(h.HandleStyles), public)
	r.handle("GET /learn/skills", http.HandlerFunc(h.HandleSkills), public)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
