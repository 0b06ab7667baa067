package handler

import (
	"net/http"

	"github.com/outofband/tracker-bfa-go/internal/domain"
	"github.com/outofband/tracker-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Admin Panel Handlers
// ============================================================

func adminOverviewHandler(svc *service.AdminService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /admin/overview")
		defer span.End()

		overview, err := svc.Overview(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, overview)
	}
}

func listBusinessesHandler(svc *service.AdminService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /admin/businesses")
		defer span.End()

		businesses, err := svc.ListBusinesses(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, businesses)
	}
}

func createBusinessHandler(svc *service.AdminService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /admin/businesses")
		defer span.End()

		var req domain.CreateBusinessRequest
		if !decodeBody(w, r, &req) {
			return
		}

		created, err := svc.CreateBusiness(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateBusinessHandler(svc *service.AdminService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /admin/businesses/{businessId}")
		defer span.End()

		var req domain.UpdateBusinessRequest
		if !decodeBody(w, r, &req) {
			return
		}

		updated, err := svc.UpdateBusiness(ctx, chi.URLParam(r, "businessId"), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteBusinessHandler(svc *service.AdminService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /admin/businesses/{businessId}")
		defer span.End()

		if err := svc.DeleteBusiness(ctx, chi.URLParam(r, "businessId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func businessStatsHandler(svc *service.AdminService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /admin/businesses/{businessId}/stats")
		defer span.End()

		stats, err := svc.BusinessStats(ctx, chi.URLParam(r, "businessId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func listUsersHandler(svc *service.AdminService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /admin/users")
		defer span.End()

		businessID := r.URL.Query().Get("businessId")
		if businessID == "" {
			writeError(w, http.StatusBadRequest, "businessId query parameter is required")
			return
		}

		users, err := svc.ListUsers(ctx, businessID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func createUserHandler(svc *service.AdminService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /admin/users")
		defer span.End()

		var req domain.CreateUserRequest
		if !decodeBody(w, r, &req) {
			return
		}

		created, err := svc.CreateUser(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateUserHandler(svc *service.AdminService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /admin/users/{userId}")
		defer span.End()

		var req domain.UpdateUserRequest
		if !decodeBody(w, r, &req) {
			return
		}

		updated, err := svc.UpdateUser(ctx, chi.URLParam(r, "userId"), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteUserHandler(svc *service.AdminService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /admin/users/{userId}")
		defer span.End()

		if err := svc.DeleteUser(ctx, chi.URLParam(r, "userId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
