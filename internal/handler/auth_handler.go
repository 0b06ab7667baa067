package handler

import (
	"net/http"

	"github.com/outofband/tracker-bfa-go/internal/domain"
	"github.com/outofband/tracker-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Auth & Session Handlers
// ============================================================

func devLoginHandler(svc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /auth/dev-login")
		defer span.End()

		var req domain.DevLoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		resp, err := svc.DevLogin(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func sessionHandler(svc *service.SessionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /session")
		defer span.End()

		identity := IdentityFromContext(ctx)
		session, err := svc.EnsureSession(ctx, identity)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}
