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
// Projects — CRUD via PostgREST
// ============================================================

// projectRow maps the projects table columns to our domain.
type projectRow struct {
	ID                        string `json:"id"`
	ProjectName               string `json:"project_name"`
	ProjectDescription        string `json:"project_description"`
	StartDate                 string `json:"start_date"`
	TargetCompletionDate      string `json:"target_completion_date"`
	Status                    string `json:"status"`
	ProjectOwner              string `json:"project_owner"`
	SupportManagementResource string `json:"support_management_resource"`
	SupportRole               string `json:"support_role"`
	EffortLevel               string `json:"effort_level"`
	TimeCommitmentPerWeek     int    `json:"time_commitment_per_week"`
	ProjectDocsLinks          string `json:"project_docs_links"`
	ExpectedOutcomes          string `json:"expected_outcomes"`
	TrainingNeeded            string `json:"training_needed"`
	ToolProcessChange         string `json:"tool_process_change"`
	MeetingCadence            string `json:"meeting_cadence"`
	CommChannel               string `json:"comm_channel"`
	EscalationPath            string `json:"escalation_path"`
	Dependencies              string `json:"dependencies"`
	KeyMilestones             string `json:"key_milestones"`
	RisksBlockers             string `json:"risks_blockers"`
	ActionItems               string `json:"action_items"`
	LatestUpdate              string `json:"latest_update"`
	BusinessID                string `json:"business_id"`
	CreatedBy                 string `json:"created_by"`
	CreatedAt                 string `json:"created_at"`
	UpdatedAt                 string `json:"updated_at"`
}

func (r projectRow) toDomain() domain.Project {
	return domain.Project{
		ID:                        r.ID,
		ProjectName:               r.ProjectName,
		ProjectDescription:        r.ProjectDescription,
		StartDate:                 r.StartDate,
		TargetCompletionDate:      r.TargetCompletionDate,
		Status:                    domain.Status(r.Status),
		ProjectOwner:              r.ProjectOwner,
		SupportManagementResource: r.SupportManagementResource,
		SupportRole:               r.SupportRole,
		EffortLevel:               domain.EffortLevel(r.EffortLevel),
		TimeCommitmentPerWeek:     r.TimeCommitmentPerWeek,
		ProjectDocsLinks:          r.ProjectDocsLinks,
		ExpectedOutcomes:          r.ExpectedOutcomes,
		TrainingNeeded:            r.TrainingNeeded,
		ToolProcessChange:         r.ToolProcessChange,
		MeetingCadence:            r.MeetingCadence,
		CommChannel:               r.CommChannel,
		EscalationPath:            r.EscalationPath,
		Dependencies:              r.Dependencies,
		KeyMilestones:             r.KeyMilestones,
		RisksBlockers:             r.RisksBlockers,
		ActionItems:               r.ActionItems,
		LatestUpdate:              r.LatestUpdate,
		BusinessID:                r.BusinessID,
		CreatedBy:                 r.CreatedBy,
		CreatedAt:                 parseTimestamp(r.CreatedAt),
		UpdatedAt:                 parseTimestamp(r.UpdatedAt),
	}
}

func projectToRow(p *domain.Project) map[string]any {
	return map[string]any{
		"id":                          p.ID,
		"project_name":                p.ProjectName,
		"project_description":         p.ProjectDescription,
		"start_date":                  p.StartDate,
		"target_completion_date":      p.TargetCompletionDate,
		"status":                      string(p.Status),
		"project_owner":               p.ProjectOwner,
		"support_management_resource": p.SupportManagementResource,
		"support_role":                p.SupportRole,
		"effort_level":                string(p.EffortLevel),
		"time_commitment_per_week":    p.TimeCommitmentPerWeek,
		"project_docs_links":          p.ProjectDocsLinks,
		"expected_outcomes":           p.ExpectedOutcomes,
		"training_needed":             p.TrainingNeeded,
		"tool_process_change":         p.ToolProcessChange,
		"meeting_cadence":             p.MeetingCadence,
		"comm_channel":                p.CommChannel,
		"escalation_path":             p.EscalationPath,
		"dependencies":                p.Dependencies,
		"key_milestones":              p.KeyMilestones,
		"risks_blockers":              p.RisksBlockers,
		"action_items":                p.ActionItems,
		"latest_update":               p.LatestUpdate,
		"business_id":                 p.BusinessID,
		"created_by":                  p.CreatedBy,
		"created_at":                  p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":                  p.UpdatedAt.Format(time.RFC3339Nano),
	}
}

// ListProjectsByBusiness returns all projects for a business,
// most recently updated first.
func (c *Client) ListProjectsByBusiness(ctx context.Context, businessID string) ([]domain.Project, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListProjectsByBusiness")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	path := fmt.Sprintf("projects?business_id=eq.%s&order=updated_at.desc", businessID)
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/projects", Err: err}
	}
	if emptyResult(body) {
		return []domain.Project{}, nil
	}

	var rows []projectRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]domain.Project, 0, len(rows))
	for _, r := range rows {
		projects = append(projects, r.toDomain())
	}
	return projects, nil
}

// GetProject fetches a single project. A miss returns (nil, nil).
func (c *Client) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", projectID))

	path := fmt.Sprintf("projects?id=eq.%s&limit=1", projectID)
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/projects", Err: err}
	}
	if emptyResult(body) {
		return nil, nil
	}

	var rows []projectRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	p := rows[0].toDomain()
	return &p, nil
}

// CreateProject inserts a fully-populated project and returns the stored row.
func (c *Client) CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateProject")
	defer span.End()

	body, err := c.doPost(ctx, "projects", projectToRow(project))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/projects", Err: err}
	}

	var rows []projectRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode created project: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("supabase returned no row for created project")
	}

	created := rows[0].toDomain()
	return &created, nil
}

// UpdateProject patches the given columns on a project. An empty
// representation means no row matched, which maps to ErrNotFound.
func (c *Client) UpdateProject(ctx context.Context, projectID string, fields map[string]any) (*domain.Project, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", projectID))

	body, err := c.doPatch(ctx, fmt.Sprintf("projects?id=eq.%s", projectID), fields)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/projects", Err: err}
	}
	if emptyResult(body) {
		return nil, &domain.ErrNotFound{Resource: "project", ID: projectID}
	}

	var rows []projectRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode updated project: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "project", ID: projectID}
	}

	updated := rows[0].toDomain()
	return &updated, nil
}

// DeleteProject removes a project. Deleting a missing project is a no-op.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", projectID))

	if err := c.doDelete(ctx, fmt.Sprintf("projects?id=eq.%s", projectID)); err != nil {
		return &domain.ErrExternalService{Service: "supabase/projects", Err: err}
	}
	return nil
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, _ = time.Parse("2006-01-02", s)
	}
	return t
}
