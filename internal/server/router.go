package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ordermate/ordermate/internal/auth"
	"github.com/ordermate/ordermate/internal/email"
	"github.com/ordermate/ordermate/internal/export"
	"github.com/ordermate/ordermate/internal/repository"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Logger        *slog.Logger
	Auth          *auth.Service
	Processor     *email.Processor
	Export        *export.Service
	Orders        repository.OrderRepository
	Products      repository.ProductRepository
	Customers     repository.CustomerRepository
	Feedback      repository.FeedbackRepository
	Errors        repository.ErrorLogRepository
	Users         repository.UserRepository
	Notifications repository.EmailNotificationRepository
	// ReviewCeiling is the confidence below which AI orders land in the
	// review queue.
	ReviewCeiling float64
	Pool          *pgxpool.Pool
}

// NewRouter wires all API routes. Auth and webhook endpoints are public,
// everything else sits behind session auth.
func NewRouter(d Deps) http.Handler {
	authH := NewAuthHandler(d.Auth, d.Logger)
	orderH := NewOrderHandler(d.Orders, d.Logger)
	productH := NewProductHandler(d.Products, d.Logger)
	customerH := NewCustomerHandler(d.Customers, d.Logger)
	feedbackH := NewFeedbackHandler(d.Feedback, d.Logger)
	errorH := NewErrorLogHandler(d.Errors, d.Logger)
	emailH := NewEmailHandler(d.Processor, d.Logger)
	exportH := NewExportHandler(d.Export, d.Logger)
	aiOrderH := NewAIOrderHandler(d.Orders, d.ReviewCeiling, d.Logger)
	notificationH := NewNotificationHandler(d.Notifications, d.Logger)
	integrationH := NewIntegrationHandler(d.Users, d.Logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(WithLogging(d.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if d.Pool != nil {
			if err := repository.HealthCheck(r.Context(), d.Pool, 3*time.Second, d.Logger); err != nil {
				respondError(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		respondJSON(w, http.StatusOK, envelope{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authH.Signup)
			r.Post("/login", authH.Login)
			r.Post("/logout", authH.Logout)
			r.With(RequireAuth(d.Auth)).Get("/me", authH.Me)
		})

		r.Route("/email", func(r chi.Router) {
			r.Post("/process", emailH.Process)
			r.Post("/test", emailH.Test)
			r.Post("/webhook/gmail", emailH.GmailWebhook)
			r.Post("/webhook/outlook", emailH.OutlookWebhook)

			r.Group(func(r chi.Router) {
				r.Use(RequireAuth(d.Auth))
				r.Get("/notifications", notificationH.List)
				r.Post("/notifications", notificationH.Create)
				r.Post("/connect", integrationH.Connect)
				r.Delete("/connect", integrationH.Disconnect)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(d.Auth))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", orderH.List)
				r.Post("/", orderH.Create)
				r.Get("/ai", aiOrderH.Overview)
				r.Get("/export", exportH.Orders)
				r.Get("/{id}", orderH.Get)
				r.Put("/{id}", orderH.Update)
				r.Delete("/{id}", orderH.Delete)
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", productH.List)
				r.Post("/", productH.Create)
				r.Get("/{id}", productH.Get)
				r.Put("/{id}", productH.Update)
				r.Delete("/{id}", productH.Delete)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", customerH.List)
				r.Post("/", customerH.Create)
				r.Get("/{id}", customerH.Get)
				r.Put("/{id}", customerH.Update)
				r.Delete("/{id}", customerH.Delete)
			})

			r.Route("/feedback", func(r chi.Router) {
				r.Get("/", feedbackH.List)
				r.Post("/", feedbackH.Create)
				r.Patch("/{id}", feedbackH.UpdateStatus)
			})

			r.Route("/errors", func(r chi.Router) {
				r.Get("/", errorH.List)
				r.Post("/", errorH.Create)
				r.Patch("/{id}", errorH.UpdateStatus)
			})
		})
	})

	return r
}
