package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/openvenue/eventgate/internal/eventgate/service"
	"github.com/openvenue/eventgate/internal/eventgate/store"
	"github.com/openvenue/eventgate/pkg/httpx"
	"github.com/openvenue/eventgate/pkg/jwtx"
	"github.com/openvenue/eventgate/pkg/slogx"

	_ "github.com/openvenue/eventgate/api/eventgate" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	sessions     *jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	AccountService  *service.AccountService
	RSVPService     *service.RSVPService
	EventService    *service.EventService
	CategoryService *service.CategoryService
	RolesService    *service.RolesService
}

func NewRouter(
	sessions *jwtx.Signer,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		sessions:     sessions,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerEvents()
	r.registerCategories()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			EventGate API
//	@version		0.1.0
//	@description	Event booking service: accounts with email activation, role-based
//	@description	access (admin / organizer / participant), an event catalogue with
//	@description	categories, and participant RSVPs with email confirmations.
//
//	@contact.name				OpenVenue Team
//	@contact.url				https://github.com/openvenue/eventgate
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Public account endpoints get strict per-IP limits: they are the
	// brute-force and enumeration surface.
	r.Mux.Handle("POST /v1/auth/signup",
		httpx.Chain(&SignupHandler{AccountService: r.AccountService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	// Login is keyed by IP + requested username so a single address cannot
	// spend its whole budget hammering one account.
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(&LoginHandler{AccountService: r.AccountService},
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
		),
	)
	// The activation handler serves both the emailed link (GET with query
	// parameters) and the JSON API shape.
	activate := httpx.Chain(&ActivateHandler{AccountService: r.AccountService},
		httpx.RateLimitByIP(httpx.StrictLimit),
	)
	r.Mux.Handle("GET /v1/auth/activate", activate)
	r.Mux.Handle("POST /v1/auth/activate", activate)
	r.Mux.Handle("POST /v1/auth/activate/resend",
		httpx.Chain(&ResendActivationHandler{AccountService: r.AccountService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(&ProfileHandler{AccountService: r.AccountService},
			httpx.AuthnMiddleware(r.sessions),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerEvents() {
	events := &EventsHandler{EventService: r.EventService}
	rsvp := &RSVPHandler{RSVPService: r.RSVPService}

	// Browsing the catalogue is public.
	r.Mux.Handle("GET /v1/events",
		httpx.Chain(http.HandlerFunc(events.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/events/{id}",
		httpx.Chain(http.HandlerFunc(events.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Catalogue mutations need organizer or admin. The middleware rejects
	// early; the services enforce the same rule again before mutating.
	manage := []httpx.Middleware{
		httpx.AuthnMiddleware(r.sessions),
		httpx.RequireAnyRole(domain.RoleOrganizer, domain.RoleAdmin),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	}
	r.Mux.Handle("POST /v1/events",
		httpx.Chain(http.HandlerFunc(events.HandleCreate), manage...))
	r.Mux.Handle("PUT /v1/events/{id}",
		httpx.Chain(http.HandlerFunc(events.HandleUpdate), manage...))
	r.Mux.Handle("DELETE /v1/events/{id}",
		httpx.Chain(http.HandlerFunc(events.HandleDelete), manage...))
	r.Mux.Handle("GET /v1/events/{id}/attendees",
		httpx.Chain(http.HandlerFunc(rsvp.HandleAttendees), manage...))

	// RSVPs are for participants.
	participate := []httpx.Middleware{
		httpx.AuthnMiddleware(r.sessions),
		httpx.RequireAnyRole(domain.RoleParticipant),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	}
	r.Mux.Handle("POST /v1/events/{id}/rsvp",
		httpx.Chain(http.HandlerFunc(rsvp.HandleRegister), participate...))
	r.Mux.Handle("DELETE /v1/events/{id}/rsvp",
		httpx.Chain(http.HandlerFunc(rsvp.HandleWithdraw), participate...))
}

func (r *Router) registerCategories() {
	h := &CategoriesHandler{CategoryService: r.CategoryService}

	r.Mux.Handle("GET /v1/categories",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	manage := []httpx.Middleware{
		httpx.AuthnMiddleware(r.sessions),
		httpx.RequireAnyRole(domain.RoleOrganizer, domain.RoleAdmin),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	}
	r.Mux.Handle("POST /v1/categories",
		httpx.Chain(http.HandlerFunc(h.HandleCreate), manage...))
	r.Mux.Handle("PUT /v1/categories/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate), manage...))
	r.Mux.Handle("DELETE /v1/categories/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete), manage...))
}

func (r *Router) registerAdmin() {
	users := &UsersHandler{RolesService: r.RolesService}
	dashboard := &DashboardHandler{EventService: r.EventService}

	r.Mux.Handle("GET /v1/dashboard",
		httpx.Chain(dashboard,
			httpx.AuthnMiddleware(r.sessions),
			httpx.RequireAnyRole(domain.RoleOrganizer, domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	admin := []httpx.Middleware{
		httpx.AuthnMiddleware(r.sessions),
		httpx.RequireAnyRole(domain.RoleAdmin),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	}
	r.Mux.Handle("GET /v1/roles",
		httpx.Chain(http.HandlerFunc(users.HandleRoles), admin...))
	r.Mux.Handle("GET /v1/users",
		httpx.Chain(http.HandlerFunc(users.HandleList), admin...))
	r.Mux.Handle("PUT /v1/users/{id}/role",
		httpx.Chain(http.HandlerFunc(users.HandleChangeRole), admin...))
	r.Mux.Handle("DELETE /v1/users/{id}",
		httpx.Chain(http.HandlerFunc(users.HandleDelete), admin...))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
