// Package service — SessionService runs the first-login bootstrap flow:
// default business, admin profile, and sample data seeding.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"
	"github.com/outofband/tracker-bfa-go/internal/infra/observability"
	"github.com/outofband/tracker-bfa-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var sessionTracer = otel.Tracer("service/session")

// SessionService resolves an authenticated identity into a ready-to-use
// session: profile, business, and (on first ever login) seeded projects.
type SessionService struct {
	businesses port.BusinessStore
	profiles   port.ProfileStore
	projects   port.ProjectStore
	cache      port.Cache[[]domain.Project]
	metrics    *observability.Metrics
	logger     *zap.Logger

	defaultBusinessName string
	now                 func() time.Time
}

// NewSessionService creates a new session service.
func NewSessionService(
	businesses port.BusinessStore,
	profiles port.ProfileStore,
	projects port.ProjectStore,
	cache port.Cache[[]domain.Project],
	metrics *observability.Metrics,
	logger *zap.Logger,
	defaultBusinessName string,
) *SessionService {
	return &SessionService{
		businesses:          businesses,
		profiles:            profiles,
		projects:            projects,
		cache:               cache,
		metrics:             metrics,
		logger:              logger,
		defaultBusinessName: defaultBusinessName,
		now:                 time.Now,
	}
}

// EnsureSession runs the bootstrap state machine for an identity.
// Every step is idempotent: existing profiles, businesses, and projects
// are reused, so calling it on every page load is safe.
func (s *SessionService) EnsureSession(ctx context.Context, identity domain.Identity) (*domain.Session, error) {
	ctx, span := sessionTracer.Start(ctx, "SessionService.EnsureSession")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", identity.UserID))

	session := &domain.Session{User: identity}

	// 1. An existing profile short-circuits the whole flow: returning
	// users never re-enter the seeding step, even with zero projects.
	profile, err := s.profiles.GetProfileByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if profile == nil {
		profile, err = s.createFirstLoginProfile(ctx, identity)
		if err != nil {
			return nil, err
		}

		// 2. Seed sample projects only while the business has zero projects.
		seeded, err := s.seedIfEmpty(ctx, profile.BusinessID, identity.UserID)
		if err != nil {
			// A failed seed leaves the account usable; the read path falls
			// back to sample data anyway.
			s.logger.Warn("sample data seed failed",
				zap.String("business_id", profile.BusinessID),
				zap.Error(err),
			)
		}
		session.Seeded = seeded
	}
	session.Profile = profile

	// 3. Resolve the business name for the header.
	biz, err := s.businesses.GetBusiness(ctx, profile.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("lookup business: %w", err)
	}
	if biz != nil {
		session.BusinessName = biz.Name
	}

	return session, nil
}

// createFirstLoginProfile finds or creates the default business and
// attaches a new admin profile to it.
func (s *SessionService) createFirstLoginProfile(ctx context.Context, identity domain.Identity) (*domain.UserProfile, error) {
	biz, err := s.businesses.GetBusinessByName(ctx, s.defaultBusinessName)
	if err != nil {
		return nil, fmt.Errorf("lookup default business: %w", err)
	}

	now := s.now().UTC()
	if biz == nil {
		biz, err = s.businesses.CreateBusiness(ctx, &domain.Business{
			ID:          uuid.NewString(),
			Name:        s.defaultBusinessName,
			Description: "Auto-created on first login",
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return nil, fmt.Errorf("create default business: %w", err)
		}
		s.logger.Info("default business created",
			zap.String("business_id", biz.ID),
			zap.String("name", biz.Name),
		)
	}

	name := identity.DisplayName
	if name == "" {
		name = identity.Email
	}

	profile, err := s.profiles.CreateProfile(ctx, &domain.UserProfile{
		ID:         uuid.NewString(),
		UserID:     identity.UserID,
		BusinessID: biz.ID,
		Role:       domain.RoleAdmin,
		Name:       name,
		Email:      identity.Email,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.logger.Info("first-login profile created",
		zap.String("profile_id", profile.ID),
		zap.String("user_id", identity.UserID),
		zap.String("business_id", biz.ID),
	)

	return profile, nil
}

// seedIfEmpty inserts the sample projects iff the business has none.
// Reports whether this call did the seeding.
func (s *SessionService) seedIfEmpty(ctx context.Context, businessID, userID string) (bool, error) {
	existing, err := s.projects.ListProjectsByBusiness(ctx, businessID)
	if err != nil {
		return false, fmt.Errorf("check existing projects: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	samples := SampleProjects(businessID, userID, s.now().UTC())
	for _, project := range samples {
		project := project
		if _, err := s.projects.CreateProject(ctx, &project); err != nil {
			return false, fmt.Errorf("seed project %q: %w", project.ProjectName, err)
		}
	}

	s.cache.DeletePrefix(listCacheKey(businessID))
	s.metrics.IncrSeedRun()
	s.logger.Info("sample projects seeded",
		zap.String("business_id", businessID),
		zap.Int("count", len(samples)),
	)

	return true, nil
}
