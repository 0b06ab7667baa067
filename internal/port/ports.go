// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/outofband/tracker-bfa-go/internal/domain"
)

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	DeletePrefix(prefix string)
}

// BusinessStore handles business (tenant) data operations.
type BusinessStore interface {
	ListBusinesses(ctx context.Context) ([]domain.Business, error)
	GetBusiness(ctx context.Context, businessID string) (*domain.Business, error)
	GetBusinessByName(ctx context.Context, name string) (*domain.Business, error)
	CreateBusiness(ctx context.Context, biz *domain.Business) (*domain.Business, error)
	UpdateBusiness(ctx context.Context, businessID string, fields map[string]any) (*domain.Business, error)
	DeleteBusiness(ctx context.Context, businessID string) error
}

// ProfileStore handles user profile data operations.
type ProfileStore interface {
	ListProfilesByBusiness(ctx context.Context, businessID string) ([]domain.UserProfile, error)
	GetProfile(ctx context.Context, profileID string) (*domain.UserProfile, error)
	GetProfileByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)
	CreateProfile(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, profileID string, fields map[string]any) (*domain.UserProfile, error)
	DeleteProfile(ctx context.Context, profileID string) error
}

// ProjectStore handles project data operations.
type ProjectStore interface {
	ListProjectsByBusiness(ctx context.Context, businessID string) ([]domain.Project, error)
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error)
	UpdateProject(ctx context.Context, projectID string, fields map[string]any) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
}

// AssignmentStore handles project assignment data operations.
type AssignmentStore interface {
	ListAssignmentsByProject(ctx context.Context, projectID string) ([]domain.ProjectAssignment, error)
	ListAssignmentsByUser(ctx context.Context, userID string) ([]domain.ProjectAssignment, error)
	CreateAssignment(ctx context.Context, assignment *domain.ProjectAssignment) (*domain.ProjectAssignment, error)
	DeleteAssignment(ctx context.Context, assignmentID string) error
}
