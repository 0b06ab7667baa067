// Package service — AdminService backs the admin panel: business and
// user management plus per-business project stats.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"
	"github.com/outofband/tracker-bfa-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var adminTracer = otel.Tracer("service/admin")

// AdminService orchestrates admin panel operations.
type AdminService struct {
	businesses port.BusinessStore
	profiles   port.ProfileStore
	projects   port.ProjectStore
	logger     *zap.Logger
	now        func() time.Time
}

// NewAdminService creates a new admin service.
func NewAdminService(businesses port.BusinessStore, profiles port.ProfileStore, projects port.ProjectStore, logger *zap.Logger) *AdminService {
	return &AdminService{
		businesses: businesses,
		profiles:   profiles,
		projects:   projects,
		logger:     logger,
		now:        time.Now,
	}
}

// ============================================================
// Businesses
// ============================================================

func (s *AdminService) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.ListBusinesses")
	defer span.End()

	return s.businesses.ListBusinesses(ctx)
}

func (s *AdminService) CreateBusiness(ctx context.Context, req *domain.CreateBusinessRequest) (*domain.Business, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.CreateBusiness")
	defer span.End()

	if req.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}

	existing, err := s.businesses.GetBusinessByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("check existing business: %w", err)
	}
	if existing != nil {
		return nil, &domain.ErrConflict{Message: fmt.Sprintf("business %q already exists", req.Name)}
	}

	now := s.now().UTC()
	created, err := s.businesses.CreateBusiness(ctx, &domain.Business{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("business created",
		zap.String("business_id", created.ID),
		zap.String("name", created.Name),
	)
	return created, nil
}

func (s *AdminService) UpdateBusiness(ctx context.Context, businessID string, req *domain.UpdateBusinessRequest) (*domain.Business, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.UpdateBusiness")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	fields := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, &domain.ErrValidation{Field: "name", Message: "name cannot be empty"}
		}
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		return nil, &domain.ErrValidation{Field: "body", Message: "no fields to update"}
	}
	fields["updated_at"] = s.now().UTC().Format(time.RFC3339Nano)

	return s.businesses.UpdateBusiness(ctx, businessID, fields)
}

func (s *AdminService) DeleteBusiness(ctx context.Context, businessID string) error {
	ctx, span := adminTracer.Start(ctx, "AdminService.DeleteBusiness")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	if err := s.businesses.DeleteBusiness(ctx, businessID); err != nil {
		return err
	}
	s.logger.Info("business deleted", zap.String("business_id", businessID))
	return nil
}

// BusinessStats counts projects for one business.
func (s *AdminService) BusinessStats(ctx context.Context, businessID string) (*domain.BusinessStats, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.BusinessStats")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	projects, err := s.projects.ListProjectsByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	stats := &domain.BusinessStats{BusinessID: businessID, Total: len(projects)}
	for _, p := range projects {
		switch p.Status {
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusInProgress, domain.StatusReview:
			stats.Active++
		}
	}
	return stats, nil
}

// BusinessOverview is one row of the admin panel's business table.
type BusinessOverview struct {
	Business domain.Business      `json:"business"`
	Stats    domain.BusinessStats `json:"stats"`
	Users    []domain.UserProfile `json:"users"`
}

// Overview fetches every business with its stats and members. The
// per-business fan-out runs concurrently.
func (s *AdminService) Overview(ctx context.Context) ([]BusinessOverview, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.Overview")
	defer span.End()

	businesses, err := s.businesses.ListBusinesses(ctx)
	if err != nil {
		return nil, err
	}

	overviews := make([]BusinessOverview, len(businesses))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, biz := range businesses {
		i, biz := i, biz
		g.Go(func() error {
			stats, err := s.BusinessStats(gctx, biz.ID)
			if err != nil {
				return fmt.Errorf("stats for %s: %w", biz.ID, err)
			}
			users, err := s.profiles.ListProfilesByBusiness(gctx, biz.ID)
			if err != nil {
				return fmt.Errorf("users for %s: %w", biz.ID, err)
			}
			mu.Lock()
			overviews[i] = BusinessOverview{Business: biz, Stats: *stats, Users: users}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return overviews, nil
}

// ============================================================
// Users
// ============================================================

func (s *AdminService) ListUsers(ctx context.Context, businessID string) ([]domain.UserProfile, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.ListUsers")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	return s.profiles.ListProfilesByBusiness(ctx, businessID)
}

func (s *AdminService) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.UserProfile, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.CreateUser")
	defer span.End()

	if req.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if req.Email == "" {
		return nil, &domain.ErrValidation{Field: "email", Message: "email is required"}
	}
	if !req.Role.Valid() {
		return nil, &domain.ErrValidation{Field: "role", Message: fmt.Sprintf("unknown role %q", req.Role)}
	}
	if req.BusinessID == "" {
		return nil, &domain.ErrValidation{Field: "businessId", Message: "business id is required"}
	}

	biz, err := s.businesses.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("lookup business: %w", err)
	}
	if biz == nil {
		return nil, &domain.ErrNotFound{Resource: "business", ID: req.BusinessID}
	}

	now := s.now().UTC()
	profile, err := s.profiles.CreateProfile(ctx, &domain.UserProfile{
		ID: uuid.NewString(),
		// Placeholder identity until the invited user actually signs in.
		UserID:     "invited-" + uuid.NewString(),
		BusinessID: req.BusinessID,
		Role:       req.Role,
		Name:       req.Name,
		Email:      req.Email,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("profile_id", profile.ID),
		zap.String("business_id", req.BusinessID),
		zap.String("role", string(req.Role)),
	)
	return profile, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, profileID string, req *domain.UpdateUserRequest) (*domain.UserProfile, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.UpdateUser")
	defer span.End()
	span.SetAttributes(attribute.String("profile.id", profileID))

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, &domain.ErrValidation{Field: "role", Message: fmt.Sprintf("unknown role %q", *req.Role)}
		}
		fields["role"] = string(*req.Role)
	}
	if len(fields) == 0 {
		return nil, &domain.ErrValidation{Field: "body", Message: "no fields to update"}
	}
	fields["updated_at"] = s.now().UTC().Format(time.RFC3339Nano)

	return s.profiles.UpdateProfile(ctx, profileID, fields)
}

func (s *AdminService) DeleteUser(ctx context.Context, profileID string) error {
	ctx, span := adminTracer.Start(ctx, "AdminService.DeleteUser")
	defer span.End()
	span.SetAttributes(attribute.String("profile.id", profileID))

	if err := s.profiles.DeleteProfile(ctx, profileID); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("profile_id", profileID))
	return nil
}
