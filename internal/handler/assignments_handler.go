package handler

import (
	"net/http"

	"github.com/outofband/tracker-bfa-go/internal/domain"
	"github.com/outofband/tracker-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Assignment Handlers
// ============================================================

func listAssignmentsHandler(svc *service.AssignmentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /projects/{projectId}/assignments")
		defer span.End()

		assignments, err := svc.ListByProject(ctx, chi.URLParam(r, "projectId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, assignments)
	}
}

func assignUserHandler(svc *service.AssignmentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /projects/{projectId}/assignments")
		defer span.End()

		var req domain.AssignUserRequest
		if !decodeBody(w, r, &req) {
			return
		}

		created, err := svc.Assign(ctx, chi.URLParam(r, "projectId"), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func unassignUserHandler(svc *service.AssignmentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /projects/{projectId}/assignments/{assignmentId}")
		defer span.End()

		if err := svc.Unassign(ctx, chi.URLParam(r, "assignmentId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listUserAssignmentsHandler(svc *service.AssignmentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /users/{userId}/assignments")
		defer span.End()

		assignments, err := svc.ListByUser(ctx, chi.URLParam(r, "userId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, assignments)
	}
}
