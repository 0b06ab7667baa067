// Package service provides the business logic layer (use cases).
// ProjectService handles the project CRUD, the kanban board, and the
// dashboard aggregates.
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

var projTracer = otel.Tracer("service/projects")

const recentProjectsLimit = 5

// ProjectService orchestrates project operations via the data store.
type ProjectService struct {
	store   port.ProjectStore
	cache   port.Cache[[]domain.Project]
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewProjectService creates a new project service.
func NewProjectService(store port.ProjectStore, cache port.Cache[[]domain.Project], metrics *observability.Metrics, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

func listCacheKey(businessID string) string {
	return "projects:" + businessID
}

// ============================================================
// ListByBusiness — GET /v1/projects?businessId=...
// ============================================================

// ListByBusiness returns all projects of a business, most recently
// updated first. If the data backend is unreachable the sample dataset
// is returned instead so the board never renders empty.
func (s *ProjectService) ListByBusiness(ctx context.Context, businessID string) ([]domain.Project, error) {
	ctx, span := projTracer.Start(ctx, "ProjectService.ListByBusiness")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	if cached, ok := s.cache.Get(listCacheKey(businessID)); ok {
		s.metrics.IncrCacheHit("projects")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("projects")

	projects, err := s.store.ListProjectsByBusiness(ctx, businessID)
	if err != nil {
		s.metrics.IncrExternalError("projects")
		s.metrics.IncrListFallback()
		s.logger.Warn("project list failed, serving sample data",
			zap.String("business_id", businessID),
			zap.Error(err),
		)
		// Fallback is never cached so a recovered backend wins immediately.
		return SampleProjects(businessID, "sample", s.now()), nil
	}

	s.cache.Set(listCacheKey(businessID), projects)
	return projects, nil
}

// ============================================================
// Get — GET /v1/projects/{projectId}
// ============================================================

func (s *ProjectService) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	ctx, span := projTracer.Start(ctx, "ProjectService.Get")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", projectID))

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		s.metrics.IncrExternalError("projects")
		return nil, err
	}
	if project == nil {
		return nil, &domain.ErrNotFound{Resource: "project", ID: projectID}
	}
	return project, nil
}

// ============================================================
// Create — POST /v1/projects
// ============================================================

func (s *ProjectService) Create(ctx context.Context, createdBy string, req *domain.CreateProjectRequest) (*domain.Project, error) {
	ctx, span := projTracer.Start(ctx, "ProjectService.Create")
	defer span.End()

	if req.ProjectName == "" {
		return nil, &domain.ErrValidation{Field: "projectName", Message: "project name is required"}
	}
	if req.BusinessID == "" {
		return nil, &domain.ErrValidation{Field: "businessId", Message: "business id is required"}
	}

	status := req.Status
	if status == "" {
		status = domain.StatusTodo
	}
	if !status.Valid() {
		return nil, &domain.ErrValidation{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}

	effort := req.EffortLevel
	if effort == "" {
		effort = domain.EffortMedium
	}
	if !effort.Valid() {
		return nil, &domain.ErrValidation{Field: "effortLevel", Message: fmt.Sprintf("unknown effort level %q", effort)}
	}

	now := s.now().UTC()
	project := &domain.Project{
		ID:                        uuid.NewString(),
		ProjectName:               req.ProjectName,
		ProjectDescription:        req.ProjectDescription,
		StartDate:                 req.StartDate,
		TargetCompletionDate:      req.TargetCompletionDate,
		Status:                    status,
		ProjectOwner:              req.ProjectOwner,
		SupportManagementResource: req.SupportManagementResource,
		SupportRole:               req.SupportRole,
		EffortLevel:               effort,
		TimeCommitmentPerWeek:     req.TimeCommitmentPerWeek,
		ProjectDocsLinks:          req.ProjectDocsLinks,
		ExpectedOutcomes:          req.ExpectedOutcomes,
		TrainingNeeded:            req.TrainingNeeded,
		ToolProcessChange:         req.ToolProcessChange,
		MeetingCadence:            req.MeetingCadence,
		CommChannel:               req.CommChannel,
		EscalationPath:            req.EscalationPath,
		Dependencies:              req.Dependencies,
		KeyMilestones:             req.KeyMilestones,
		RisksBlockers:             req.RisksBlockers,
		ActionItems:               req.ActionItems,
		LatestUpdate:              req.LatestUpdate,
		BusinessID:                req.BusinessID,
		CreatedBy:                 createdBy,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}

	created, err := s.store.CreateProject(ctx, project)
	if err != nil {
		s.metrics.IncrExternalError("projects")
		return nil, err
	}

	s.cache.DeletePrefix(listCacheKey(req.BusinessID))
	s.metrics.IncrProjectOp("create")
	s.logger.Info("project created",
		zap.String("project_id", created.ID),
		zap.String("business_id", created.BusinessID),
		zap.String("status", string(created.Status)),
	)

	return created, nil
}

// ============================================================
// Update — PATCH /v1/projects/{projectId}
// ============================================================

func (s *ProjectService) Update(ctx context.Context, projectID string, req *domain.UpdateProjectRequest) (*domain.Project, error) {
	ctx, span := projTracer.Start(ctx, "ProjectService.Update")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", projectID))

	fields, err := updateFields(req)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, &domain.ErrValidation{Field: "body", Message: "no fields to update"}
	}
	fields["updated_at"] = s.now().UTC().Format(time.RFC3339Nano)

	updated, err := s.store.UpdateProject(ctx, projectID, fields)
	if err != nil {
		return nil, err
	}

	s.cache.DeletePrefix(listCacheKey(updated.BusinessID))
	s.metrics.IncrProjectOp("update")
	s.logger.Info("project updated",
		zap.String("project_id", projectID),
		zap.Int("fields", len(fields)-1),
	)

	return updated, nil
}

// updateFields maps a partial request onto PostgREST columns.
// Only fields present in the request are touched.
func updateFields(req *domain.UpdateProjectRequest) (map[string]any, error) {
	fields := map[string]any{}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, &domain.ErrValidation{Field: "status", Message: fmt.Sprintf("unknown status %q", *req.Status)}
		}
		fields["status"] = string(*req.Status)
	}
	if req.EffortLevel != nil {
		if !req.EffortLevel.Valid() {
			return nil, &domain.ErrValidation{Field: "effortLevel", Message: fmt.Sprintf("unknown effort level %q", *req.EffortLevel)}
		}
		fields["effort_level"] = string(*req.EffortLevel)
	}

	setString := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	setString("project_name", req.ProjectName)
	setString("project_description", req.ProjectDescription)
	setString("start_date", req.StartDate)
	setString("target_completion_date", req.TargetCompletionDate)
	setString("project_owner", req.ProjectOwner)
	setString("support_management_resource", req.SupportManagementResource)
	setString("support_role", req.SupportRole)
	setString("project_docs_links", req.ProjectDocsLinks)
	setString("expected_outcomes", req.ExpectedOutcomes)
	setString("training_needed", req.TrainingNeeded)
	setString("tool_process_change", req.ToolProcessChange)
	setString("meeting_cadence", req.MeetingCadence)
	setString("comm_channel", req.CommChannel)
	setString("escalation_path", req.EscalationPath)
	setString("dependencies", req.Dependencies)
	setString("key_milestones", req.KeyMilestones)
	setString("risks_blockers", req.RisksBlockers)
	setString("action_items", req.ActionItems)
	setString("latest_update", req.LatestUpdate)

	if req.TimeCommitmentPerWeek != nil {
		fields["time_commitment_per_week"] = *req.TimeCommitmentPerWeek
	}

	return fields, nil
}

// ============================================================
// Move — POST /v1/projects/{projectId}/move
// ============================================================

// Move applies a kanban drag-and-drop. A cross-column drop changes the
// status; dropping back into the same column only bumps updated_at so
// the card floats to the top of its column.
func (s *ProjectService) Move(ctx context.Context, projectID string, req *domain.MoveProjectRequest) (*domain.Project, error) {
	ctx, span := projTracer.Start(ctx, "ProjectService.Move")
	defer span.End()
	span.SetAttributes(
		attribute.String("project.id", projectID),
		attribute.String("to.status", string(req.Status)),
	)

	if !req.Status.Valid() {
		return nil, &domain.ErrValidation{Field: "status", Message: fmt.Sprintf("unknown status %q", req.Status)}
	}

	current, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		s.metrics.IncrExternalError("projects")
		return nil, err
	}
	if current == nil {
		return nil, &domain.ErrNotFound{Resource: "project", ID: projectID}
	}

	fields := map[string]any{
		"updated_at": s.now().UTC().Format(time.RFC3339Nano),
	}
	crossColumn := current.Status != req.Status
	if crossColumn {
		fields["status"] = string(req.Status)
	}

	updated, err := s.store.UpdateProject(ctx, projectID, fields)
	if err != nil {
		return nil, err
	}

	s.cache.DeletePrefix(listCacheKey(updated.BusinessID))
	s.metrics.IncrProjectOp("move")
	if crossColumn {
		s.metrics.IncrStatusTransition(req.Status)
		s.logger.Info("project moved",
			zap.String("project_id", projectID),
			zap.String("from", string(current.Status)),
			zap.String("to", string(req.Status)),
		)
	}

	return updated, nil
}

// ============================================================
// Delete — DELETE /v1/projects/{projectId}
// ============================================================

// Delete removes a project. Deleting an already-deleted project succeeds.
func (s *ProjectService) Delete(ctx context.Context, projectID string) error {
	ctx, span := projTracer.Start(ctx, "ProjectService.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", projectID))

	// Look up the business first so the right cache keys get dropped.
	current, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		s.metrics.IncrExternalError("projects")
		return err
	}

	if err := s.store.DeleteProject(ctx, projectID); err != nil {
		s.metrics.IncrExternalError("projects")
		return err
	}

	if current != nil {
		s.cache.DeletePrefix(listCacheKey(current.BusinessID))
	}
	s.metrics.IncrProjectOp("delete")
	s.logger.Info("project deleted", zap.String("project_id", projectID))
	return nil
}

// ============================================================
// Board — GET /v1/businesses/{businessId}/board
// ============================================================

// Board groups a business's projects into the four kanban columns.
func (s *ProjectService) Board(ctx context.Context, businessID string) (*domain.Board, error) {
	ctx, span := projTracer.Start(ctx, "ProjectService.Board")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	projects, err := s.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[domain.Status][]domain.Project, len(domain.StatusColumns))
	for _, p := range projects {
		byStatus[p.Status] = append(byStatus[p.Status], p)
	}

	columns := make([]domain.BoardColumn, 0, len(domain.StatusColumns))
	for _, status := range domain.StatusColumns {
		col := byStatus[status]
		if col == nil {
			col = []domain.Project{}
		}
		columns = append(columns, domain.BoardColumn{
			Status:   status,
			Title:    domain.ColumnTitle(status),
			Projects: col,
		})
	}

	return &domain.Board{BusinessID: businessID, Columns: columns}, nil
}

// ============================================================
// Dashboard — GET /v1/businesses/{businessId}/dashboard
// ============================================================

// Dashboard computes the summary tiles shown above the board.
func (s *ProjectService) Dashboard(ctx context.Context, businessID string) (*domain.DashboardSummary, error) {
	ctx, span := projTracer.Start(ctx, "ProjectService.Dashboard")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	projects, err := s.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summary := &domain.DashboardSummary{
		BusinessID:    businessID,
		TotalProjects: len(projects),
		ByStatus:      make(map[domain.Status]int, len(domain.StatusColumns)),
	}
	for _, status := range domain.StatusColumns {
		summary.ByStatus[status] = 0
	}

	completed := 0
	for _, p := range projects {
		summary.ByStatus[p.Status]++
		if p.Status == domain.StatusCompleted {
			completed++
		} else {
			summary.WeeklyHours += p.TimeCommitmentPerWeek
		}
		if p.Overdue(now) {
			summary.Overdue++
		}
	}

	if len(projects) > 0 {
		summary.CompletionRate = float64(completed) / float64(len(projects)) * 100
	}

	// Projects arrive sorted by updated_at desc already.
	recent := projects
	if len(recent) > recentProjectsLimit {
		recent = recent[:recentProjectsLimit]
	}
	summary.RecentProjects = recent

	return summary, nil
}
