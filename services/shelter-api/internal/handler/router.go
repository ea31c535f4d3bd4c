package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/unrolled/secure"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/config"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/usecase"
	"github.com/vasapolrittideah/animal-shelter-api/shared/auth"
	"github.com/vasapolrittideah/animal-shelter-api/shared/httputil"
	"github.com/vasapolrittideah/animal-shelter-api/shared/metrics"
	"github.com/vasapolrittideah/animal-shelter-api/shared/middleware"
	"github.com/vasapolrittideah/animal-shelter-api/shared/validation"
)

const welcomeMessage = "Welcome to the Animal Shelter API!"

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Dependencies is everything the router needs. PasswordResetUsecase may be nil, in
// which case the forgot/reset password routes are not mounted.
type Dependencies struct {
	Logger               *zerolog.Logger
	Config               *config.ShelterAPIConfig
	Validator            *validation.Validator
	JWTAuth              auth.JWTAuthenticator
	Metrics              *metrics.HTTPMetrics
	Pinger               Pinger
	AuthUsecase          usecase.AuthUsecase
	PasswordResetUsecase usecase.PasswordResetUsecase
	UserUsecase          usecase.UserUsecase
	AdminUsecase         usecase.AdminUsecase
	PetUsecase           usecase.PetUsecase
	VolunteerUsecase     usecase.VolunteerUsecase
	DonationUsecase      usecase.DonationUsecase
}

// NewRouter builds the HTTP handler of the shelter API.
func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config

	jwtMiddleware := middleware.NewJWTMiddleware(deps.JWTAuth, cfg.Token.Secret)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
		IsDevelopment:         cfg.IsDevelopment(),
	})

	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.Error(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(hlog.NewHandler(*deps.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.RemoteAddrHandler("ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(deps.Metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Auth-Token"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(secureMiddleware.Handler)
	r.Use(rateLimiter.Handler)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(welcomeMessage))
	})
	r.Get("/health", healthHandler(deps.Pinger))
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	authHandler := &authHTTPHandler{
		authUsecase:          deps.AuthUsecase,
		passwordResetUsecase: deps.PasswordResetUsecase,
		validator:            deps.Validator,
	}
	userHandler := &userHTTPHandler{userUsecase: deps.UserUsecase, validator: deps.Validator}
	adminHandler := &adminHTTPHandler{adminUsecase: deps.AdminUsecase, validator: deps.Validator}
	petHandler := &petHTTPHandler{petUsecase: deps.PetUsecase, validator: deps.Validator}
	volunteerHandler := &volunteerHTTPHandler{volunteerUsecase: deps.VolunteerUsecase, validator: deps.Validator}
	donationHandler := &donationHTTPHandler{donationUsecase: deps.DonationUsecase, validator: deps.Validator}

	adminOnly := middleware.RequireRole(auth.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			if cfg.GoogleClientID != "" {
				r.Post("/google", authHandler.GoogleLogin)
			}

			if deps.PasswordResetUsecase != nil && cfg.PasswordResetEnabled() {
				r.Post("/forgot-password", authHandler.ForgotPassword)
				r.Post("/reset-password", authHandler.ResetPassword)
			}
		})

		r.Route("/pets", func(r chi.Router) {
			r.Get("/", petHandler.ListPets)
			r.Get("/{id}", petHandler.GetPet)

			r.Group(func(r chi.Router) {
				r.Use(jwtMiddleware.Authenticate, adminOnly)

				r.Post("/", petHandler.CreatePet)
				r.Post("/image-upload-url", petHandler.CreateImageUploadURL)
				r.Put("/{id}", petHandler.UpdatePet)
				r.Patch("/{id}", petHandler.UpdatePet)
				r.Delete("/{id}", petHandler.DeletePet)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(jwtMiddleware.Authenticate)

			r.With(adminOnly).Get("/", userHandler.ListUsers)
			r.Get("/me", userHandler.GetMe)
			r.Get("/{id}", userHandler.GetUser)
			r.Put("/{id}", userHandler.UpdateUser)
			r.Delete("/{id}", userHandler.DeleteUser)
		})

		r.Route("/volunteers", func(r chi.Router) {
			r.With(jwtMiddleware.Optional).Post("/", volunteerHandler.SignUp)

			r.Group(func(r chi.Router) {
				r.Use(jwtMiddleware.Authenticate, adminOnly)

				r.Get("/", volunteerHandler.ListVolunteers)
				r.Get("/{id}", volunteerHandler.GetVolunteer)
				r.Put("/{id}", volunteerHandler.UpdateVolunteer)
				r.Delete("/{id}", volunteerHandler.DeleteVolunteer)
			})
		})

		r.Route("/donations", func(r chi.Router) {
			r.With(jwtMiddleware.Optional).Post("/", donationHandler.CreateDonation)

			r.Group(func(r chi.Router) {
				r.Use(jwtMiddleware.Authenticate, adminOnly)

				r.Get("/", donationHandler.ListDonations)
				r.Get("/{id}", donationHandler.GetDonation)
				r.Put("/{id}", donationHandler.UpdateDonation)
				r.Delete("/{id}", donationHandler.DeleteDonation)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(jwtMiddleware.Authenticate, adminOnly)

			r.Get("/stats", adminHandler.GetStats)
			r.Put("/users/{id}/role", adminHandler.ChangeUserRole)
		})
	})

	return r
}

type healthResponse struct {
	Status string `json:"status"`
}

func healthHandler(pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("database ping failed")
			httputil.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}

		httputil.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
