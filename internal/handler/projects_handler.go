package handler

import (
	"net/http"

	"github.com/outofband/tracker-bfa-go/internal/domain"
	"github.com/outofband/tracker-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Projects Handlers
// ============================================================

func listProjectsHandler(svc *service.ProjectService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /businesses/{businessId}/projects")
		defer span.End()
		businessID := chi.URLParam(r, "businessId")

		projects, err := svc.ListByBusiness(ctx, businessID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		// Optional column filter for single-column views.
		if statusFilter := r.URL.Query().Get("status"); statusFilter != "" {
			status := domain.Status(statusFilter)
			if !status.Valid() {
				writeError(w, http.StatusBadRequest, "unknown status filter")
				return
			}
			filtered := make([]domain.Project, 0, len(projects))
			for _, p := range projects {
				if p.Status == status {
					filtered = append(filtered, p)
				}
			}
			projects = filtered
		}

		writeJSON(w, http.StatusOK, projects)
	}
}

func getProjectHandler(svc *service.ProjectService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /projects/{projectId}")
		defer span.End()

		project, err := svc.Get(ctx, chi.URLParam(r, "projectId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, project)
	}
}

func createProjectHandler(svc *service.ProjectService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /projects")
		defer span.End()

		var req domain.CreateProjectRequest
		if !decodeBody(w, r, &req) {
			return
		}

		identity := IdentityFromContext(ctx)
		created, err := svc.Create(ctx, identity.UserID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateProjectHandler(svc *service.ProjectService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /projects/{projectId}")
		defer span.End()

		var req domain.UpdateProjectRequest
		if !decodeBody(w, r, &req) {
			return
		}

		updated, err := svc.Update(ctx, chi.URLParam(r, "projectId"), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteProjectHandler(svc *service.ProjectService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /projects/{projectId}")
		defer span.End()

		if err := svc.Delete(ctx, chi.URLParam(r, "projectId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func moveProjectHandler(svc *service.ProjectService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /projects/{projectId}/move")
		defer span.End()

		var req domain.MoveProjectRequest
		if !decodeBody(w, r, &req) {
			return
		}

		updated, err := svc.Move(ctx, chi.URLParam(r, "projectId"), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func boardHandler(svc *service.ProjectService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /businesses/{businessId}/board")
		defer span.End()

		board, err := svc.Board(ctx, chi.URLParam(r, "businessId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, board)
	}
}

func dashboardHandler(svc *service.ProjectService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /businesses/{businessId}/dashboard")
		defer span.End()

		summary, err := svc.Dashboard(ctx, chi.URLParam(r, "businessId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
