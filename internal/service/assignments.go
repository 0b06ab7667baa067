// Package service — AssignmentService links user profiles to projects.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"
	"github.com/outofband/tracker-bfa-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var assignTracer = otel.Tracer("service/assignments")

// AssignmentService manages the project/user many-to-many.
type AssignmentService struct {
	assignments port.AssignmentStore
	projects    port.ProjectStore
	logger      *zap.Logger
	now         func() time.Time
}

// NewAssignmentService creates a new assignment service.
func NewAssignmentService(assignments port.AssignmentStore, projects port.ProjectStore, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		projects:    projects,
		logger:      logger,
		now:         time.Now,
	}
}

// ListByProject returns a project's assignments.
func (s *AssignmentService) ListByProject(ctx context.Context, projectID string) ([]domain.ProjectAssignment, error) {
	ctx, span := assignTracer.Start(ctx, "AssignmentService.ListByProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", projectID))

	return s.assignments.ListAssignmentsByProject(ctx, projectID)
}

// ListByUser returns all projects a user is assigned to.
func (s *AssignmentService) ListByUser(ctx context.Context, userID string) ([]domain.ProjectAssignment, error) {
	ctx, span := assignTracer.Start(ctx, "AssignmentService.ListByUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	return s.assignments.ListAssignmentsByUser(ctx, userID)
}

// Assign adds a user to a project. Re-assigning an already-assigned
// user is a conflict.
func (s *AssignmentService) Assign(ctx context.Context, projectID string, req *domain.AssignUserRequest) (*domain.ProjectAssignment, error) {
	ctx, span := assignTracer.Start(ctx, "AssignmentService.Assign")
	defer span.End()
	span.SetAttributes(
		attribute.String("project.id", projectID),
		attribute.String("user.id", req.UserID),
	)

	if req.UserID == "" {
		return nil, &domain.ErrValidation{Field: "userId", Message: "user id is required"}
	}

	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, &domain.ErrNotFound{Resource: "project", ID: projectID}
	}

	existing, err := s.assignments.ListAssignmentsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("check existing assignments: %w", err)
	}
	for _, a := range existing {
		if a.UserID == req.UserID {
			return nil, &domain.ErrConflict{Message: "user already assigned to project"}
		}
	}

	created, err := s.assignments.CreateAssignment(ctx, &domain.ProjectAssignment{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		UserID:     req.UserID,
		Role:       req.Role,
		AssignedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user assigned to project",
		zap.String("project_id", projectID),
		zap.String("user_id", req.UserID),
	)
	return created, nil
}

// Unassign removes an assignment. Missing assignments are a no-op.
func (s *AssignmentService) Unassign(ctx context.Context, assignmentID string) error {
	ctx, span := assignTracer.Start(ctx, "AssignmentService.Unassign")
	defer span.End()
	span.SetAttributes(attribute.String("assignment.id", assignmentID))

	if err := s.assignments.DeleteAssignment(ctx, assignmentID); err != nil {
		return err
	}
	s.logger.Info("assignment removed", zap.String("assignment_id", assignmentID))
	return nil
}
