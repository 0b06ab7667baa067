package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Project assignments — CRUD via PostgREST
// ============================================================

type assignmentRow struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	AssignedAt string `json:"assigned_at"`
}

func (r assignmentRow) toDomain() domain.ProjectAssignment {
	return domain.ProjectAssignment{
		ID:         r.ID,
		ProjectID:  r.ProjectID,
		UserID:     r.UserID,
		Role:       r.Role,
		AssignedAt: parseTimestamp(r.AssignedAt),
	}
}

// ListAssignmentsByProject returns all assignments for a project.
func (c *Client) ListAssignmentsByProject(ctx context.Context, projectID string) ([]domain.ProjectAssignment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListAssignmentsByProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", projectID))

	path := fmt.Sprintf("project_assignments?project_id=eq.%s&order=assigned_at.asc", projectID)
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/project_assignments", Err: err}
	}
	if emptyResult(body) {
		return []domain.ProjectAssignment{}, nil
	}

	var rows []assignmentRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}

	out := make([]domain.ProjectAssignment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// ListAssignmentsByUser returns all assignments for a user.
func (c *Client) ListAssignmentsByUser(ctx context.Context, userID string) ([]domain.ProjectAssignment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListAssignmentsByUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	path := fmt.Sprintf("project_assignments?user_id=eq.%s&order=assigned_at.asc", userID)
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/project_assignments", Err: err}
	}
	if emptyResult(body) {
		return []domain.ProjectAssignment{}, nil
	}

	var rows []assignmentRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}

	out := make([]domain.ProjectAssignment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// CreateAssignment inserts an assignment and returns the stored row.
func (c *Client) CreateAssignment(ctx context.Context, assignment *domain.ProjectAssignment) (*domain.ProjectAssignment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateAssignment")
	defer span.End()

	body, err := c.doPost(ctx, "project_assignments", map[string]any{
		"id":          assignment.ID,
		"project_id":  assignment.ProjectID,
		"user_id":     assignment.UserID,
		"role":        assignment.Role,
		"assigned_at": assignment.AssignedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/project_assignments", Err: err}
	}

	var rows []assignmentRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode created assignment: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("supabase returned no row for created assignment")
	}
	created := rows[0].toDomain()
	return &created, nil
}

// DeleteAssignment removes an assignment. Missing rows are a no-op.
func (c *Client) DeleteAssignment(ctx context.Context, assignmentID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteAssignment")
	defer span.End()
	span.SetAttributes(attribute.String("assignment.id", assignmentID))

	if err := c.doDelete(ctx, fmt.Sprintf("project_assignments?id=eq.%s", assignmentID)); err != nil {
		return &domain.ErrExternalService{Service: "supabase/project_assignments", Err: err}
	}
	return nil
}
