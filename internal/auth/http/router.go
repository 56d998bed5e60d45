package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/vidora-app/vidora/internal/auth/media"
	"github.com/vidora-app/vidora/internal/auth/service"
	"github.com/vidora-app/vidora/internal/auth/store"
	"github.com/vidora-app/vidora/pkg/httpx"
	"github.com/vidora-app/vidora/pkg/jwtx"
	"github.com/vidora-app/vidora/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens       *jwtx.Issuer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	UserService *service.UserService
	Media       media.Store
}

func NewRouter(
	tokens *jwtx.Issuer,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		tokens:       tokens,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Credentials travel in cookies, so "*" is never a valid origin here;
	// a missing allowlist keeps CORS closed rather than open.
	c := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		c.Handler,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAccount()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Vidora Auth Service API
//	@version		0.1.0
//	@description	Authentication and session lifecycle for the Vidora platform: credential flows, two-class signed tokens and single-slot refresh rotation.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}". Also accepted as the accessToken cookie.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	gate := AuthGate(r.tokens, r.UserService)

	r.Mux.Handle("POST /register", &RegisterHandler{
		AuthService: r.AuthService,
		Media:       r.Media,
	})
	r.Mux.Handle("POST /login", &LoginHandler{AuthService: r.AuthService})

	// Refresh is public: the refresh token itself is the credential.
	r.Mux.Handle("POST /refresh-token", &RefreshHandler{AuthService: r.AuthService})

	r.Mux.Handle("POST /logout",
		httpx.Chain(&LogoutHandler{AuthService: r.AuthService}, gate))
	r.Mux.Handle("POST /change-password",
		httpx.Chain(&ChangePasswordHandler{AuthService: r.AuthService}, gate))
}

func (r *Router) registerAccount() {
	gate := AuthGate(r.tokens, r.UserService)

	r.Mux.Handle("GET /me",
		httpx.Chain(&MeHandler{UserService: r.UserService}, gate))
	r.Mux.Handle("PATCH /me",
		httpx.Chain(&UpdateAccountHandler{UserService: r.UserService}, gate))
	r.Mux.Handle("PATCH /me/avatar",
		httpx.Chain(&UpdateAvatarHandler{UserService: r.UserService, Media: r.Media}, gate))
	r.Mux.Handle("PATCH /me/cover-image",
		httpx.Chain(&UpdateCoverImageHandler{UserService: r.UserService, Media: r.Media}, gate))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
