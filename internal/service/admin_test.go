package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"
	"github.com/outofband/tracker-bfa-go/internal/infra/memstore"
	"github.com/outofband/tracker-bfa-go/internal/service"

	"go.uber.org/zap"
)

func newAdminService() (*service.AdminService, *memstore.Store) {
	store := memstore.New()
	return service.NewAdminService(store, store, store, zap.NewNop()), store
}

func TestCreateBusiness_Conflict(t *testing.T) {
	svc, _ := newAdminService()

	if _, err := svc.CreateBusiness(context.Background(), &domain.CreateBusinessRequest{Name: "Acme"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.CreateBusiness(context.Background(), &domain.CreateBusinessRequest{Name: "Acme"})
	var conflict *domain.ErrConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict on duplicate name, got %v", err)
	}
}

func TestCreateUser_Validation(t *testing.T) {
	svc, _ := newAdminService()

	biz, err := svc.CreateBusiness(context.Background(), &domain.CreateBusinessRequest{Name: "Acme"})
	if err != nil {
		t.Fatalf("create business: %v", err)
	}

	cases := []struct {
		name string
		req  domain.CreateUserRequest
	}{
		{"missing name", domain.CreateUserRequest{Email: "a@b.c", Role: domain.RoleStaff, BusinessID: biz.ID}},
		{"missing email", domain.CreateUserRequest{Name: "A", Role: domain.RoleStaff, BusinessID: biz.ID}},
		{"bad role", domain.CreateUserRequest{Name: "A", Email: "a@b.c", Role: "owner", BusinessID: biz.ID}},
		{"missing business", domain.CreateUserRequest{Name: "A", Email: "a@b.c", Role: domain.RoleStaff}},
	}
	for _, tc := range cases {
		_, err := svc.CreateUser(context.Background(), &tc.req)
		var validation *domain.ErrValidation
		if !errors.As(err, &validation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}

	var notFound *domain.ErrNotFound
	_, err = svc.CreateUser(context.Background(), &domain.CreateUserRequest{
		Name: "A", Email: "a@b.c", Role: domain.RoleStaff, BusinessID: "nope",
	})
	if !errors.As(err, &notFound) {
		t.Errorf("expected not found for unknown business, got %v", err)
	}

	created, err := svc.CreateUser(context.Background(), &domain.CreateUserRequest{
		Name: "A", Email: "a@b.c", Role: domain.RoleManager, BusinessID: biz.ID,
	})
	if err != nil {
		t.Fatalf("valid create: %v", err)
	}
	if created.UserID == "" {
		t.Error("invited users still need a placeholder user id")
	}
}

func TestBusinessStats_Counts(t *testing.T) {
	svc, store := newAdminService()

	now := time.Now().UTC()
	seed := []domain.Status{
		domain.StatusTodo,
		domain.StatusInProgress,
		domain.StatusReview,
		domain.StatusCompleted,
		domain.StatusCompleted,
	}
	for i, status := range seed {
		if _, err := store.CreateProject(context.Background(), &domain.Project{
			ID: string(rune('a' + i)), ProjectName: "p", Status: status, BusinessID: "biz-1", UpdatedAt: now,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	stats, err := svc.BusinessStats(context.Background(), "biz-1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 5 {
		t.Errorf("expected total 5, got %d", stats.Total)
	}
	if stats.Active != 2 {
		t.Errorf("expected 2 active (in_progress + review), got %d", stats.Active)
	}
	if stats.Completed != 2 {
		t.Errorf("expected 2 completed, got %d", stats.Completed)
	}
}

func TestOverview_FansOut(t *testing.T) {
	svc, store := newAdminService()

	a, err := svc.CreateBusiness(context.Background(), &domain.CreateBusinessRequest{Name: "Alpha"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := svc.CreateBusiness(context.Background(), &domain.CreateBusinessRequest{Name: "Beta"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Now().UTC()
	if _, err := store.CreateProject(context.Background(), &domain.Project{
		ID: "p1", ProjectName: "only in alpha", Status: domain.StatusInProgress, BusinessID: a.ID, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	if _, err := svc.CreateUser(context.Background(), &domain.CreateUserRequest{
		Name: "Bob", Email: "bob@beta.example", Role: domain.RoleStaff, BusinessID: b.ID,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	overviews, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overviews) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(overviews))
	}

	byName := map[string]service.BusinessOverview{}
	for _, o := range overviews {
		byName[o.Business.Name] = o
	}
	if byName["Alpha"].Stats.Total != 1 || byName["Alpha"].Stats.Active != 1 {
		t.Errorf("unexpected Alpha stats: %+v", byName["Alpha"].Stats)
	}
	if len(byName["Beta"].Users) != 1 {
		t.Errorf("expected 1 Beta user, got %d", len(byName["Beta"].Users))
	}
}

func TestUpdateBusiness_PointerFields(t *testing.T) {
	svc, _ := newAdminService()

	biz, err := svc.CreateBusiness(context.Background(), &domain.CreateBusinessRequest{
		Name: "Acme", Description: "original",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var validation *domain.ErrValidation
	if _, err := svc.UpdateBusiness(context.Background(), biz.ID, &domain.UpdateBusinessRequest{}); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for empty body, got %v", err)
	}

	empty := ""
	cleared, err := svc.UpdateBusiness(context.Background(), biz.ID, &domain.UpdateBusinessRequest{Description: &empty})
	if err != nil {
		t.Fatalf("clear description: %v", err)
	}
	if cleared.Description != "" {
		t.Errorf("expected cleared description, got %q", cleared.Description)
	}
	if cleared.Name != "Acme" {
		t.Errorf("name must survive a description-only patch, got %q", cleared.Name)
	}

	if _, err := svc.UpdateBusiness(context.Background(), biz.ID, &domain.UpdateBusinessRequest{Name: &empty}); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestUpdateUser_RequiresFields(t *testing.T) {
	svc, _ := newAdminService()

	_, err := svc.UpdateUser(context.Background(), "profile-1", &domain.UpdateUserRequest{})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error for empty body, got %v", err)
	}

	badRole := domain.Role("owner")
	_, err = svc.UpdateUser(context.Background(), "profile-1", &domain.UpdateUserRequest{Role: &badRole})
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error for bad role, got %v", err)
	}
}
