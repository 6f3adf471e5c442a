package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jonwraymond/coursecms/auth"
	"github.com/jonwraymond/coursecms/cache"
	"github.com/jonwraymond/coursecms/catalog"
	"github.com/jonwraymond/coursecms/health"
	"github.com/jonwraymond/coursecms/observe"
)

// Deps are the collaborators the router serves.
type Deps struct {
	Catalog *catalog.Catalog
	// Cache is the store admins inspect and clear. Pass ReadThrough.Store()
	// so a clear also fences reads in flight.
	Cache  cache.Store
	Health *health.Aggregator

	// Authn identifies admin clients. Nil rejects every protected route.
	Authn auth.Authenticator

	// Authz defaults to auth.CatalogRBAC.
	Authz auth.Authorizer

	Logger observe.Logger

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler

	CORSOrigins []string
}

// Server routes catalog requests.
type Server struct {
	catalog *catalog.Catalog
	cache   cache.Store
	authn   auth.Authenticator
	authz   auth.Authorizer
	logger  observe.Logger
	router  chi.Router
}

// NewServer builds the router.
func NewServer(d Deps) *Server {
	s := &Server{
		catalog: d.Catalog,
		cache:   d.Cache,
		authn:   d.Authn,
		authz:   d.Authz,
		logger:  d.Logger,
	}
	if s.authn == nil {
		s.authn = auth.NewCompositeAuthenticator()
	}
	if s.authz == nil {
		s.authz = auth.CatalogRBAC()
	}
	if s.logger == nil {
		s.logger = observe.NopLogger()
	}

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", auth.APIKeyHeader, "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if d.Health != nil {
		health.Register(r, d.Health)
	}
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		c := s.catalog
		mount(r, s, "/categories", c.Categories, false)
		mount(r, s, "/course-types", c.CourseTypes, false)
		mount(r, s, "/institutions", c.Institutions, false)
		mount(r, s, "/instructors", c.Instructors, false)
		mount(r, s, "/news", c.News, false)
		mount(r, s, "/popups", c.Popups, false)
		mount(r, s, "/courses", c.Courses, false)
		mount(r, s, "/admin-users", c.AdminUsers, true)
		mount(r, s, "/banners", c.Banners, false)

		r.Route("/admin/cache", func(r chi.Router) {
			r.Use(s.requireIdentity)
			r.With(s.requirePermission("cache", auth.ActionRead)).Get("/stats", s.cacheStats)
			r.With(s.requirePermission("cache", auth.ActionWrite)).Post("/clear", s.cacheClear)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, failure{Error: "route not found"})
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) requireIdentity(next http.Handler) http.Handler {
	return auth.RequireIdentity(s.authn, s.writeError)(next)
}

func (s *Server) requirePermission(resource, action string) func(http.Handler) http.Handler {
	return auth.RequirePermission(s.authz, resource, action, s.writeError)
}

// logRequests writes one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "http request",
			observe.Field{Key: "method", Value: r.Method},
			observe.Field{Key: "path", Value: r.URL.Path},
			observe.Field{Key: "status", Value: ww.Status()},
			observe.Field{Key: "bytes", Value: ww.BytesWritten()},
			observe.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
			observe.Field{Key: "request_id", Value: middleware.GetReqID(r.Context())},
		)
	})
}

func principal(r *http.Request) string {
	return auth.PrincipalFromContext(r.Context())
}
