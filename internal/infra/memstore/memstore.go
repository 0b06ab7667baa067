// Package memstore provides an in-memory implementation of the data
// ports. Used when the hosted backend is disabled (local development)
// and by the test suite.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"
)

// Store keeps all tracker data in process memory.
// Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	businesses  map[string]domain.Business
	profiles    map[string]domain.UserProfile
	projects    map[string]domain.Project
	assignments map[string]domain.ProjectAssignment
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		businesses:  make(map[string]domain.Business),
		profiles:    make(map[string]domain.UserProfile),
		projects:    make(map[string]domain.Project),
		assignments: make(map[string]domain.ProjectAssignment),
	}
}

// --- BusinessStore ---

func (s *Store) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Business, 0, len(s.businesses))
	for _, b := range s.businesses {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *Store) GetBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.businesses[businessID]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *Store) GetBusinessByName(ctx context.Context, name string) (*domain.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.businesses {
		if b.Name == name {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateBusiness(ctx context.Context, biz *domain.Business) (*domain.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.businesses[biz.ID] = *biz
	created := *biz
	return &created, nil
}

func (s *Store) UpdateBusiness(ctx context.Context, businessID string, fields map[string]any) (*domain.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.businesses[businessID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "business", ID: businessID}
	}

	for k, v := range fields {
		switch k {
		case "name":
			b.Name, _ = v.(string)
		case "description":
			b.Description, _ = v.(string)
		case "updated_at":
			b.UpdatedAt = parseAny(v)
		}
	}
	s.businesses[businessID] = b
	updated := b
	return &updated, nil
}

func (s *Store) DeleteBusiness(ctx context.Context, businessID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.businesses, businessID)
	return nil
}

// --- ProfileStore ---

func (s *Store) ListProfilesByBusiness(ctx context.Context, businessID string) ([]domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.UserProfile, 0)
	for _, p := range s.profiles {
		if p.BusinessID == businessID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) GetProfile(ctx context.Context, profileID string) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[profileID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) GetProfileByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.profiles {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateProfile(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.ID] = *profile
	created := *profile
	return &created, nil
}

func (s *Store) UpdateProfile(ctx context.Context, profileID string, fields map[string]any) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[profileID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "profile", ID: profileID}
	}

	for k, v := range fields {
		switch k {
		case "name":
			p.Name, _ = v.(string)
		case "email":
			p.Email, _ = v.(string)
		case "role":
			if str, ok := v.(string); ok {
				p.Role = domain.Role(str)
			}
		case "business_id":
			p.BusinessID, _ = v.(string)
		case "updated_at":
			p.UpdatedAt = parseAny(v)
		}
	}
	s.profiles[profileID] = p
	updated := p
	return &updated, nil
}

func (s *Store) DeleteProfile(ctx context.Context, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.profiles, profileID)
	return nil
}

// --- ProjectStore ---

func (s *Store) ListProjectsByBusiness(ctx context.Context, businessID string) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Project, 0)
	for _, p := range s.projects {
		if p.BusinessID == businessID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *Store) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[projectID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects[project.ID] = *project
	created := *project
	return &created, nil
}

func (s *Store) UpdateProject(ctx context.Context, projectID string, fields map[string]any) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[projectID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "project", ID: projectID}
	}

	applyProjectFields(&p, fields)
	s.projects[projectID] = p
	updated := p
	return &updated, nil
}

func (s *Store) DeleteProject(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.projects, projectID)
	return nil
}

// --- AssignmentStore ---

func (s *Store) ListAssignmentsByProject(ctx context.Context, projectID string) ([]domain.ProjectAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ProjectAssignment, 0)
	for _, a := range s.assignments {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AssignedAt.Before(out[j].AssignedAt)
	})
	return out, nil
}

func (s *Store) ListAssignmentsByUser(ctx context.Context, userID string) ([]domain.ProjectAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ProjectAssignment, 0)
	for _, a := range s.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AssignedAt.Before(out[j].AssignedAt)
	})
	return out, nil
}

func (s *Store) CreateAssignment(ctx context.Context, assignment *domain.ProjectAssignment) (*domain.ProjectAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assignments[assignment.ID] = *assignment
	created := *assignment
	return &created, nil
}

func (s *Store) DeleteAssignment(ctx context.Context, assignmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.assignments, assignmentID)
	return nil
}

// applyProjectFields merges a snake_case column map into a project,
// mirroring what a PostgREST PATCH would do.
func applyProjectFields(p *domain.Project, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "project_name":
			p.ProjectName, _ = v.(string)
		case "project_description":
			p.ProjectDescription, _ = v.(string)
		case "start_date":
			p.StartDate, _ = v.(string)
		case "target_completion_date":
			p.TargetCompletionDate, _ = v.(string)
		case "status":
			if str, ok := v.(string); ok {
				p.Status = domain.Status(str)
			}
		case "project_owner":
			p.ProjectOwner, _ = v.(string)
		case "support_management_resource":
			p.SupportManagementResource, _ = v.(string)
		case "support_role":
			p.SupportRole, _ = v.(string)
		case "effort_level":
			if str, ok := v.(string); ok {
				p.EffortLevel = domain.EffortLevel(str)
			}
		case "time_commitment_per_week":
			switch n := v.(type) {
			case int:
				p.TimeCommitmentPerWeek = n
			case float64:
				p.TimeCommitmentPerWeek = int(n)
			}
		case "project_docs_links":
			p.ProjectDocsLinks, _ = v.(string)
		case "expected_outcomes":
			p.ExpectedOutcomes, _ = v.(string)
		case "training_needed":
			p.TrainingNeeded, _ = v.(string)
		case "tool_process_change":
			p.ToolProcessChange, _ = v.(string)
		case "meeting_cadence":
			p.MeetingCadence, _ = v.(string)
		case "comm_channel":
			p.CommChannel, _ = v.(string)
		case "escalation_path":
			p.EscalationPath, _ = v.(string)
		case "dependencies":
			p.Dependencies, _ = v.(string)
		case "key_milestones":
			p.KeyMilestones, _ = v.(string)
		case "risks_blockers":
			p.RisksBlockers, _ = v.(string)
		case "action_items":
			p.ActionItems, _ = v.(string)
		case "latest_update":
			p.LatestUpdate, _ = v.(string)
		case "updated_at":
			p.UpdatedAt = parseAny(v)
		}
	}
}

func parseAny(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err == nil {
			return parsed
		}
	}
	return time.Time{}
}
