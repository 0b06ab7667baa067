package handler

import (
	"net/http"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"
	"github.com/outofband/tracker-bfa-go/internal/infra/observability"
	"github.com/outofband/tracker-bfa-go/internal/port"
	"github.com/outofband/tracker-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Deps bundles everything the router needs.
type Deps struct {
	Auth        *service.AuthService
	Session     *service.SessionService
	Projects    *service.ProjectService
	Assignments *service.AssignmentService
	Admin       *service.AdminService
	Profiles    port.ProfileStore
	Businesses  port.BusinessStore
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract used by the tracker frontend.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(d.Logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(d.Businesses, d.Logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// Dev login stays outside the auth fence.
		r.Post("/auth/dev-login", devLoginHandler(d.Auth, d.Logger))

		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(d.Auth, d.Logger))

			// Session bootstrap
			r.Get("/session", sessionHandler(d.Session, d.Logger))

			// Business-scoped views
			r.Get("/businesses/{businessId}/projects", listProjectsHandler(d.Projects, d.Logger))
			r.Get("/businesses/{businessId}/board", boardHandler(d.Projects, d.Logger))
			r.Get("/businesses/{businessId}/dashboard", dashboardHandler(d.Projects, d.Logger))

			// Projects
			r.Post("/projects", createProjectHandler(d.Projects, d.Logger))
			r.Get("/projects/{projectId}", getProjectHandler(d.Projects, d.Logger))
			r.Patch("/projects/{projectId}", updateProjectHandler(d.Projects, d.Logger))
			r.Delete("/projects/{projectId}", deleteProjectHandler(d.Projects, d.Logger))
			r.Post("/projects/{projectId}/move", moveProjectHandler(d.Projects, d.Logger))

			// Assignments
			r.Get("/projects/{projectId}/assignments", listAssignmentsHandler(d.Assignments, d.Logger))
			r.Post("/projects/{projectId}/assignments", assignUserHandler(d.Assignments, d.Logger))
			r.Delete("/projects/{projectId}/assignments/{assignmentId}", unassignUserHandler(d.Assignments, d.Logger))
			r.Get("/users/{userId}/assignments", listUserAssignmentsHandler(d.Assignments, d.Logger))

			// Board metrics snapshot
			r.Get("/metrics/board", boardMetricsHandler(d.Metrics))

			// Admin panel
			r.Route("/admin", func(r chi.Router) {
				r.Use(RequireAdmin(d.Profiles, d.Logger))

				r.Get("/overview", adminOverviewHandler(d.Admin, d.Logger))

				r.Get("/businesses", listBusinessesHandler(d.Admin, d.Logger))
				r.Post("/businesses", createBusinessHandler(d.Admin, d.Logger))
				r.Patch("/businesses/{businessId}", updateBusinessHandler(d.Admin, d.Logger))
				r.Delete("/businesses/{businessId}", deleteBusinessHandler(d.Admin, d.Logger))
				r.Get("/businesses/{businessId}/stats", businessStatsHandler(d.Admin, d.Logger))

				r.Get("/users", listUsersHandler(d.Admin, d.Logger))
				r.Post("/users", createUserHandler(d.Admin, d.Logger))
				r.Patch("/users/{userId}", updateUserHandler(d.Admin, d.Logger))
				r.Delete("/users/{userId}", deleteUserHandler(d.Admin, d.Logger))
			})
		})
	})

	return r
}

// ============================================================
// Operational handlers
// ============================================================

func healthzHandler(businesses port.BusinessStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "tracker-bfa", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if businesses != nil {
			start := time.Now()
			_, err := businesses.GetBusiness(ctx, "health-check")
			latency := time.Since(start).Milliseconds()
			status := "healthy"
			if err != nil {
				status = "degraded"
			}
			services = append(services, domain.ServiceHealth{
				Name: "supabase", Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overall := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overall = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overall = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overall,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func boardMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetBoardSnapshot())
	}
}
