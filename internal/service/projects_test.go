package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"
	"github.com/outofband/tracker-bfa-go/internal/infra/cache"
	"github.com/outofband/tracker-bfa-go/internal/infra/memstore"
	"github.com/outofband/tracker-bfa-go/internal/infra/observability"
	"github.com/outofband/tracker-bfa-go/internal/service"

	"go.uber.org/zap"
)

// --- Mocks ---

// failingProjectStore simulates an unreachable data backend.
type failingProjectStore struct{}

func (f *failingProjectStore) ListProjectsByBusiness(_ context.Context, _ string) ([]domain.Project, error) {
	return nil, errors.New("connection refused")
}
func (f *failingProjectStore) GetProject(_ context.Context, _ string) (*domain.Project, error) {
	return nil, errors.New("connection refused")
}
func (f *failingProjectStore) CreateProject(_ context.Context, _ *domain.Project) (*domain.Project, error) {
	return nil, errors.New("connection refused")
}
func (f *failingProjectStore) UpdateProject(_ context.Context, _ string, _ map[string]any) (*domain.Project, error) {
	return nil, errors.New("connection refused")
}
func (f *failingProjectStore) DeleteProject(_ context.Context, _ string) error {
	return errors.New("connection refused")
}

func newProjectService() (*service.ProjectService, *memstore.Store) {
	store := memstore.New()
	svc := service.NewProjectService(store, cache.New[[]domain.Project](time.Minute), observability.NewMetrics(), zap.NewNop())
	return svc, store
}

func createProject(t *testing.T, svc *service.ProjectService, businessID, name string) *domain.Project {
	t.Helper()
	created, err := svc.Create(context.Background(), "user-1", &domain.CreateProjectRequest{
		ProjectName: name,
		BusinessID:  businessID,
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return created
}

// --- Tests ---

func TestCreate_DefaultsAndRoundtrip(t *testing.T) {
	svc, _ := newProjectService()

	created, err := svc.Create(context.Background(), "user-1", &domain.CreateProjectRequest{
		ProjectName: "New Project",
		BusinessID:  "biz-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if created.ID == "" {
		t.Error("expected generated id")
	}
	if created.Status != domain.StatusTodo {
		t.Errorf("expected default status todo, got %s", created.Status)
	}
	if created.EffortLevel != domain.EffortMedium {
		t.Errorf("expected default effort medium, got %s", created.EffortLevel)
	}
	if created.CreatedBy != "user-1" {
		t.Errorf("expected createdBy user-1, got %s", created.CreatedBy)
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Error("expected createdAt == updatedAt on create")
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get after create: %v", err)
	}
	if got.ProjectName != "New Project" {
		t.Errorf("expected roundtripped name, got %s", got.ProjectName)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newProjectService()

	_, err := svc.Create(context.Background(), "user-1", &domain.CreateProjectRequest{BusinessID: "biz-1"})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error for missing name, got %v", err)
	}

	badStatus := domain.Status("archived")
	_, err = svc.Create(context.Background(), "user-1", &domain.CreateProjectRequest{
		ProjectName: "X", BusinessID: "biz-1", Status: badStatus,
	})
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error for bad status, got %v", err)
	}
}

func TestListByBusiness_FiltersAndOrders(t *testing.T) {
	svc, _ := newProjectService()

	first := createProject(t, svc, "biz-1", "first")
	time.Sleep(5 * time.Millisecond)
	second := createProject(t, svc, "biz-1", "second")
	createProject(t, svc, "biz-2", "other tenant")

	projects, err := svc.ListByBusiness(context.Background(), "biz-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(projects) != 2 {
		t.Fatalf("expected 2 projects for biz-1, got %d", len(projects))
	}
	if projects[0].ID != second.ID || projects[1].ID != first.ID {
		t.Error("expected most recently updated project first")
	}
	for _, p := range projects {
		if p.BusinessID != "biz-1" {
			t.Errorf("expected business scoping, got project for %s", p.BusinessID)
		}
	}
}

func TestListByBusiness_FallbackOnBackendError(t *testing.T) {
	svc := service.NewProjectService(&failingProjectStore{}, cache.New[[]domain.Project](time.Minute), observability.NewMetrics(), zap.NewNop())

	projects, err := svc.ListByBusiness(context.Background(), "biz-down")
	if err != nil {
		t.Fatalf("expected fallback instead of error, got %v", err)
	}
	if len(projects) != 5 {
		t.Fatalf("expected 5 sample projects, got %d", len(projects))
	}

	seen := map[string]bool{}
	for _, p := range projects {
		if p.BusinessID != "biz-down" {
			t.Errorf("expected fallback stamped with requested business, got %s", p.BusinessID)
		}
		if !p.Status.Valid() {
			t.Errorf("invalid status in sample data: %s", p.Status)
		}
		if seen[p.ID] {
			t.Errorf("duplicate sample project id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestGet_Missing(t *testing.T) {
	svc, _ := newProjectService()

	_, err := svc.Get(context.Background(), "nope")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdate_MergesAndRefreshesUpdatedAt(t *testing.T) {
	svc, _ := newProjectService()
	created := createProject(t, svc, "biz-1", "before")

	name := "after"
	updated, err := svc.Update(context.Background(), created.ID, &domain.UpdateProjectRequest{
		ProjectName: &name,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.ProjectName != "after" {
		t.Errorf("expected updated name, got %s", updated.ProjectName)
	}
	if updated.Status != created.Status {
		t.Error("untouched fields must survive a partial update")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("expected updatedAt to be refreshed")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("createdAt must never change on update")
	}
}

func TestUpdate_Missing(t *testing.T) {
	svc, _ := newProjectService()

	name := "x"
	_, err := svc.Update(context.Background(), "nope", &domain.UpdateProjectRequest{ProjectName: &name})
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	svc, _ := newProjectService()
	created := createProject(t, svc, "biz-1", "doomed")

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("second delete must succeed, got %v", err)
	}

	_, err := svc.Get(context.Background(), created.ID)
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestMove_CrossColumn(t *testing.T) {
	svc, _ := newProjectService()
	created := createProject(t, svc, "biz-1", "movable")

	moved, err := svc.Move(context.Background(), created.ID, &domain.MoveProjectRequest{Status: domain.StatusInProgress})
	if err != nil {
		t.Fatalf("move: %v", err)
	}

	if moved.Status != domain.StatusInProgress {
		t.Errorf("expected in_progress, got %s", moved.Status)
	}
	if !moved.UpdatedAt.After(created.UpdatedAt) {
		t.Error("expected updatedAt bump on move")
	}
	if moved.ProjectName != created.ProjectName {
		t.Error("move must not touch other fields")
	}
}

func TestMove_SameColumnTouchesOnlyUpdatedAt(t *testing.T) {
	svc, _ := newProjectService()
	created := createProject(t, svc, "biz-1", "reordered")

	moved, err := svc.Move(context.Background(), created.ID, &domain.MoveProjectRequest{Status: created.Status})
	if err != nil {
		t.Fatalf("move: %v", err)
	}

	if moved.Status != created.Status {
		t.Error("same-column move must keep status")
	}
	if !moved.UpdatedAt.After(created.UpdatedAt) {
		t.Error("same-column move must still bump updatedAt")
	}
}

func TestMove_InvalidStatus(t *testing.T) {
	svc, _ := newProjectService()
	created := createProject(t, svc, "biz-1", "stuck")

	_, err := svc.Move(context.Background(), created.ID, &domain.MoveProjectRequest{Status: "archived"})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBoard_GroupsIntoColumns(t *testing.T) {
	svc, _ := newProjectService()

	a := createProject(t, svc, "biz-1", "a")
	b := createProject(t, svc, "biz-1", "b")
	if _, err := svc.Move(context.Background(), b.ID, &domain.MoveProjectRequest{Status: domain.StatusCompleted}); err != nil {
		t.Fatalf("move: %v", err)
	}

	board, err := svc.Board(context.Background(), "biz-1")
	if err != nil {
		t.Fatalf("board: %v", err)
	}

	if len(board.Columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(board.Columns))
	}
	for i, status := range domain.StatusColumns {
		if board.Columns[i].Status != status {
			t.Errorf("column %d: expected %s, got %s", i, status, board.Columns[i].Status)
		}
	}

	todo := board.Columns[0]
	if len(todo.Projects) != 1 || todo.Projects[0].ID != a.ID {
		t.Error("expected project a in the todo column")
	}
	completed := board.Columns[3]
	if len(completed.Projects) != 1 || completed.Projects[0].ID != b.ID {
		t.Error("expected project b in the completed column")
	}
}

func TestDashboard_Aggregates(t *testing.T) {
	svc, store := newProjectService()

	now := time.Now().UTC()
	past := now.AddDate(0, 0, -10).Format("2006-01-02")
	future := now.AddDate(0, 0, 10).Format("2006-01-02")

	seed := []domain.Project{
		{ID: "p1", ProjectName: "done", Status: domain.StatusCompleted, TargetCompletionDate: past, TimeCommitmentPerWeek: 10, BusinessID: "biz-1", UpdatedAt: now},
		{ID: "p2", ProjectName: "late", Status: domain.StatusInProgress, TargetCompletionDate: past, TimeCommitmentPerWeek: 8, BusinessID: "biz-1", UpdatedAt: now},
		{ID: "p3", ProjectName: "on track", Status: domain.StatusTodo, TargetCompletionDate: future, TimeCommitmentPerWeek: 4, BusinessID: "biz-1", UpdatedAt: now},
		{ID: "p4", ProjectName: "in review", Status: domain.StatusReview, BusinessID: "biz-1", UpdatedAt: now},
	}
	for i := range seed {
		if _, err := store.CreateProject(context.Background(), &seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	summary, err := svc.Dashboard(context.Background(), "biz-1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if summary.TotalProjects != 4 {
		t.Errorf("expected 4 projects, got %d", summary.TotalProjects)
	}
	if summary.ByStatus[domain.StatusCompleted] != 1 || summary.ByStatus[domain.StatusInProgress] != 1 {
		t.Error("unexpected status counts")
	}
	if summary.Overdue != 1 {
		t.Errorf("expected 1 overdue (completed projects never count), got %d", summary.Overdue)
	}
	if summary.CompletionRate != 25 {
		t.Errorf("expected 25%% completion rate, got %f", summary.CompletionRate)
	}
	if summary.WeeklyHours != 12 {
		t.Errorf("expected 12 weekly hours from open projects, got %d", summary.WeeklyHours)
	}
	if len(summary.RecentProjects) != 4 {
		t.Errorf("expected 4 recent projects, got %d", len(summary.RecentProjects))
	}
}
