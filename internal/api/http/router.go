package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ovenbird/recipebox/internal/api/service"
	"github.com/ovenbird/recipebox/internal/api/store"
	"github.com/ovenbird/recipebox/pkg/httpx"
	"github.com/ovenbird/recipebox/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	TokenService     *service.TokenService
	UserService      *service.UserService
	RecipeService    *service.RecipeService
	BootstrapService *service.BootstrapService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerRecipes()
	r.registerBootstrap()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	// POST /users/create - open route, strict per-IP limit (signup abuse)
	createHandler := &UserCreateHandler{UserService: r.UserService}
	r.Mux.Handle("POST /v1/users/create",
		httpx.Chain(createHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /users/token - open route, strict per-IP limit (brute force prevention)
	tokenHandler := &TokenHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/users/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET/PATCH /users/me - authenticated self-service profile
	meHandler := &MeHandler{UserService: r.UserService}
	secured := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.TokenService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}
	r.Mux.Handle("GET /v1/users/me", secured(http.HandlerFunc(meHandler.HandleGet)))
	r.Mux.Handle("PATCH /v1/users/me", secured(http.HandlerFunc(meHandler.HandlePatch)))
}

func (r *Router) registerRecipes() {
	h := &RecipesHandler{RecipeService: r.RecipeService}

	secured := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.TokenService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /v1/recipes", secured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("POST /v1/recipes", secured(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /v1/recipes/{id}", secured(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("PUT /v1/recipes/{id}", secured(http.HandlerFunc(h.HandlePut)))
	r.Mux.Handle("PATCH /v1/recipes/{id}", secured(http.HandlerFunc(h.HandlePatch)))
	r.Mux.Handle("DELETE /v1/recipes/{id}", secured(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerBootstrap() {
	// POST /admin/superuser - gated by pre-shared token, strict per-IP limit
	bootstrapHandler := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/admin/superuser",
		httpx.Chain(bootstrapHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public limits (monitoring systems poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
