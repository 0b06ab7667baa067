package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"
	"github.com/outofband/tracker-bfa-go/internal/handler"
	"github.com/outofband/tracker-bfa-go/internal/infra/cache"
	"github.com/outofband/tracker-bfa-go/internal/infra/memstore"
	"github.com/outofband/tracker-bfa-go/internal/infra/observability"
	"github.com/outofband/tracker-bfa-go/internal/service"

	"go.uber.org/zap"
)

// newServer wires the full stack over the in-memory store, the same way
// main does when Supabase is not configured.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memstore.New()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	projectCache := cache.New[[]domain.Project](time.Minute)

	authSvc := service.NewAuthService("integration-secret", time.Hour, true, "", logger)
	router := handler.NewRouter(handler.Deps{
		Auth:        authSvc,
		Session:     service.NewSessionService(store, store, store, projectCache, metrics, logger, "Default Organization"),
		Projects:    service.NewProjectService(store, projectCache, metrics, logger),
		Assignments: service.NewAssignmentService(store, store, logger),
		Admin:       service.NewAdminService(store, store, store, logger),
		Profiles:    store,
		Businesses:  store,
		Metrics:     metrics,
		Logger:      logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func login(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	var resp domain.DevLoginResponse
	code := doJSON(t, http.MethodPost, srv.URL+"/v1/auth/dev-login", "",
		domain.DevLoginRequest{Email: email, Name: "Integration"}, &resp)
	if code != http.StatusOK {
		t.Fatalf("dev login: status %d", code)
	}
	return resp.AccessToken
}

func TestIntegration_FullFlow(t *testing.T) {
	srv := newServer(t)
	token := login(t, srv, "flow@example.com")

	// --- First session bootstraps business, profile, and sample data ---
	var session domain.Session
	if code := doJSON(t, http.MethodGet, srv.URL+"/v1/session", token, nil, &session); code != http.StatusOK {
		t.Fatalf("session: status %d", code)
	}
	if session.Profile == nil {
		t.Fatal("expected a profile")
	}
	if !session.Seeded {
		t.Error("first session must seed sample projects")
	}
	businessID := session.Profile.BusinessID

	// --- Board shows the five seeded projects ---
	var board domain.Board
	if code := doJSON(t, http.MethodGet, srv.URL+"/v1/businesses/"+businessID+"/board", token, nil, &board); code != http.StatusOK {
		t.Fatalf("board: status %d", code)
	}
	total := 0
	for _, col := range board.Columns {
		total += len(col.Projects)
	}
	if total != 5 {
		t.Fatalf("expected 5 projects on the board, got %d", total)
	}

	// --- Create a project ---
	var created domain.Project
	code := doJSON(t, http.MethodPost, srv.URL+"/v1/projects", token, domain.CreateProjectRequest{
		ProjectName: "Integration Project",
		BusinessID:  businessID,
	}, &created)
	if code != http.StatusCreated {
		t.Fatalf("create: status %d", code)
	}
	if created.Status != domain.StatusTodo {
		t.Errorf("expected default todo, got %s", created.Status)
	}

	// --- Move it across columns ---
	var moved domain.Project
	code = doJSON(t, http.MethodPost, srv.URL+"/v1/projects/"+created.ID+"/move", token,
		domain.MoveProjectRequest{Status: domain.StatusInProgress}, &moved)
	if code != http.StatusOK {
		t.Fatalf("move: status %d", code)
	}
	if moved.Status != domain.StatusInProgress {
		t.Errorf("expected in_progress after move, got %s", moved.Status)
	}

	// --- Patch a field ---
	owner := "Integration Owner"
	var patched domain.Project
	code = doJSON(t, http.MethodPatch, srv.URL+"/v1/projects/"+created.ID, token,
		domain.UpdateProjectRequest{ProjectOwner: &owner}, &patched)
	if code != http.StatusOK {
		t.Fatalf("patch: status %d", code)
	}
	if patched.ProjectOwner != owner {
		t.Errorf("expected patched owner, got %q", patched.ProjectOwner)
	}
	if patched.Status != domain.StatusInProgress {
		t.Error("patch must not clobber the moved status")
	}

	// --- Dashboard reflects the new project ---
	var summary domain.DashboardSummary
	if code := doJSON(t, http.MethodGet, srv.URL+"/v1/businesses/"+businessID+"/dashboard", token, nil, &summary); code != http.StatusOK {
		t.Fatalf("dashboard: status %d", code)
	}
	if summary.TotalProjects != 6 {
		t.Errorf("expected 6 projects on the dashboard, got %d", summary.TotalProjects)
	}

	// --- Delete, then confirm it is gone ---
	if code := doJSON(t, http.MethodDelete, srv.URL+"/v1/projects/"+created.ID, token, nil, nil); code != http.StatusNoContent {
		t.Fatalf("delete: status %d", code)
	}
	if code := doJSON(t, http.MethodGet, srv.URL+"/v1/projects/"+created.ID, token, nil, nil); code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", code)
	}

	// --- Second session is idempotent ---
	var again domain.Session
	if code := doJSON(t, http.MethodGet, srv.URL+"/v1/session", token, nil, &again); code != http.StatusOK {
		t.Fatalf("second session: status %d", code)
	}
	if again.Seeded {
		t.Error("second session must not seed again")
	}
}

func TestIntegration_Assignments(t *testing.T) {
	srv := newServer(t)
	token := login(t, srv, "assign@example.com")

	var session domain.Session
	if code := doJSON(t, http.MethodGet, srv.URL+"/v1/session", token, nil, &session); code != http.StatusOK {
		t.Fatalf("session: status %d", code)
	}

	var created domain.Project
	code := doJSON(t, http.MethodPost, srv.URL+"/v1/projects", token, domain.CreateProjectRequest{
		ProjectName: "Shared Project",
		BusinessID:  session.Profile.BusinessID,
	}, &created)
	if code != http.StatusCreated {
		t.Fatalf("create: status %d", code)
	}

	assignURL := fmt.Sprintf("%s/v1/projects/%s/assignments", srv.URL, created.ID)

	var assignment domain.ProjectAssignment
	if code := doJSON(t, http.MethodPost, assignURL, token,
		domain.AssignUserRequest{UserID: session.Profile.UserID, Role: "lead"}, &assignment); code != http.StatusCreated {
		t.Fatalf("assign: status %d", code)
	}

	// Duplicate assignment conflicts.
	if code := doJSON(t, http.MethodPost, assignURL, token,
		domain.AssignUserRequest{UserID: session.Profile.UserID}, nil); code != http.StatusConflict {
		t.Errorf("expected 409 on duplicate assignment, got %d", code)
	}

	var assignments []domain.ProjectAssignment
	if code := doJSON(t, http.MethodGet, assignURL, token, nil, &assignments); code != http.StatusOK {
		t.Fatalf("list assignments: status %d", code)
	}
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}

	if code := doJSON(t, http.MethodDelete, assignURL+"/"+assignment.ID, token, nil, nil); code != http.StatusNoContent {
		t.Fatalf("unassign: status %d", code)
	}
}

func TestIntegration_AdminPanel(t *testing.T) {
	srv := newServer(t)
	token := login(t, srv, "admin@example.com")

	// Bootstrap grants the first user an admin profile.
	var session domain.Session
	if code := doJSON(t, http.MethodGet, srv.URL+"/v1/session", token, nil, &session); code != http.StatusOK {
		t.Fatalf("session: status %d", code)
	}

	var biz domain.Business
	code := doJSON(t, http.MethodPost, srv.URL+"/v1/admin/businesses", token,
		domain.CreateBusinessRequest{Name: "Second Org", Description: "created via admin"}, &biz)
	if code != http.StatusCreated {
		t.Fatalf("create business: status %d", code)
	}

	if code := doJSON(t, http.MethodPost, srv.URL+"/v1/admin/businesses", token,
		domain.CreateBusinessRequest{Name: "Second Org"}, nil); code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate business, got %d", code)
	}

	var user domain.UserProfile
	code = doJSON(t, http.MethodPost, srv.URL+"/v1/admin/users", token, domain.CreateUserRequest{
		Name: "Manager", Email: "manager@example.com", Role: domain.RoleManager, BusinessID: biz.ID,
	}, &user)
	if code != http.StatusCreated {
		t.Fatalf("create user: status %d", code)
	}

	var overviews []service.BusinessOverview
	if code := doJSON(t, http.MethodGet, srv.URL+"/v1/admin/overview", token, nil, &overviews); code != http.StatusOK {
		t.Fatalf("overview: status %d", code)
	}
	if len(overviews) != 2 {
		t.Errorf("expected 2 businesses in the overview, got %d", len(overviews))
	}
}
