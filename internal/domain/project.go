package domain

import "time"

// ============================================================
// Projects — the core record of the tracker
// ============================================================

// Status is the kanban column a project sits in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
)

// StatusColumns lists the four board columns in display order.
var StatusColumns = []Status{StatusTodo, StatusInProgress, StatusReview, StatusCompleted}

// Valid reports whether s is one of the four board statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// EffortLevel is the coarse workload classification of a project.
type EffortLevel string

const (
	EffortLow    EffortLevel = "low"
	EffortMedium EffortLevel = "medium"
	EffortHigh   EffortLevel = "high"
)

// Valid reports whether e is a known effort level.
func (e EffortLevel) Valid() bool {
	switch e {
	case EffortLow, EffortMedium, EffortHigh:
		return true
	}
	return false
}

// Project represents a tracked project. Field names follow the API contract
// used by the tracker frontend.
type Project struct {
	ID                        string      `json:"id"`
	ProjectName               string      `json:"projectName"`
	ProjectDescription        string      `json:"projectDescription,omitempty"`
	StartDate                 string      `json:"startDate,omitempty"`
	TargetCompletionDate      string      `json:"targetCompletionDate,omitempty"`
	Status                    Status      `json:"status"`
	ProjectOwner              string      `json:"projectOwner,omitempty"`
	SupportManagementResource string      `json:"supportManagementResource,omitempty"`
	SupportRole               string      `json:"supportRole,omitempty"`
	EffortLevel               EffortLevel `json:"effortLevel"`
	TimeCommitmentPerWeek     int         `json:"timeCommitmentPerWeek,omitempty"`
	ProjectDocsLinks          string      `json:"projectDocsLinks,omitempty"`
	ExpectedOutcomes          string      `json:"expectedOutcomes,omitempty"`
	TrainingNeeded            string      `json:"trainingNeeded,omitempty"`
	ToolProcessChange         string      `json:"toolProcessChange,omitempty"`
	MeetingCadence            string      `json:"meetingCadence,omitempty"`
	CommChannel               string      `json:"commChannel,omitempty"`
	EscalationPath            string      `json:"escalationPath,omitempty"`
	Dependencies              string      `json:"dependencies,omitempty"`
	KeyMilestones             string      `json:"keyMilestones,omitempty"`
	RisksBlockers             string      `json:"risksBlockers,omitempty"`
	ActionItems               string      `json:"actionItems,omitempty"`
	LatestUpdate              string      `json:"latestUpdate,omitempty"`
	BusinessID                string      `json:"businessId"`
	CreatedBy                 string      `json:"createdBy"`
	CreatedAt                 time.Time   `json:"createdAt"`
	UpdatedAt                 time.Time   `json:"updatedAt"`
}

// Overdue reports whether the target completion date has passed for a
// project that is not yet completed. Dates are stored as YYYY-MM-DD.
func (p *Project) Overdue(now time.Time) bool {
	if p.TargetCompletionDate == "" || p.Status == StatusCompleted {
		return false
	}
	target, err := time.Parse("2006-01-02", p.TargetCompletionDate)
	if err != nil {
		return false
	}
	return target.Before(now)
}

// CreateProjectRequest is the body for POST /v1/projects.
type CreateProjectRequest struct {
	ProjectName               string      `json:"projectName"`
	ProjectDescription        string      `json:"projectDescription,omitempty"`
	StartDate                 string      `json:"startDate,omitempty"`
	TargetCompletionDate      string      `json:"targetCompletionDate,omitempty"`
	Status                    Status      `json:"status,omitempty"`
	ProjectOwner              string      `json:"projectOwner,omitempty"`
	SupportManagementResource string      `json:"supportManagementResource,omitempty"`
	SupportRole               string      `json:"supportRole,omitempty"`
	EffortLevel               EffortLevel `json:"effortLevel,omitempty"`
	TimeCommitmentPerWeek     int         `json:"timeCommitmentPerWeek,omitempty"`
	ProjectDocsLinks          string      `json:"projectDocsLinks,omitempty"`
	ExpectedOutcomes          string      `json:"expectedOutcomes,omitempty"`
	TrainingNeeded            string      `json:"trainingNeeded,omitempty"`
	ToolProcessChange         string      `json:"toolProcessChange,omitempty"`
	MeetingCadence            string      `json:"meetingCadence,omitempty"`
	CommChannel               string      `json:"commChannel,omitempty"`
	EscalationPath            string      `json:"escalationPath,omitempty"`
	Dependencies              string      `json:"dependencies,omitempty"`
	KeyMilestones             string      `json:"keyMilestones,omitempty"`
	RisksBlockers             string      `json:"risksBlockers,omitempty"`
	ActionItems               string      `json:"actionItems,omitempty"`
	LatestUpdate              string      `json:"latestUpdate,omitempty"`
	BusinessID                string      `json:"businessId"`
}

// UpdateProjectRequest is the body for PATCH /v1/projects/{projectId}.
// Pointer fields distinguish "not sent" from "set to empty".
type UpdateProjectRequest struct {
	ProjectName               *string      `json:"projectName,omitempty"`
	ProjectDescription        *string      `json:"projectDescription,omitempty"`
	StartDate                 *string      `json:"startDate,omitempty"`
	TargetCompletionDate      *string      `json:"targetCompletionDate,omitempty"`
	Status                    *Status      `json:"status,omitempty"`
	ProjectOwner              *string      `json:"projectOwner,omitempty"`
	SupportManagementResource *string      `json:"supportManagementResource,omitempty"`
	SupportRole               *string      `json:"supportRole,omitempty"`
	EffortLevel               *EffortLevel `json:"effortLevel,omitempty"`
	TimeCommitmentPerWeek     *int         `json:"timeCommitmentPerWeek,omitempty"`
	ProjectDocsLinks          *string      `json:"projectDocsLinks,omitempty"`
	ExpectedOutcomes          *string      `json:"expectedOutcomes,omitempty"`
	TrainingNeeded            *string      `json:"trainingNeeded,omitempty"`
	ToolProcessChange         *string      `json:"toolProcessChange,omitempty"`
	MeetingCadence            *string      `json:"meetingCadence,omitempty"`
	CommChannel               *string      `json:"commChannel,omitempty"`
	EscalationPath            *string      `json:"escalationPath,omitempty"`
	Dependencies              *string      `json:"dependencies,omitempty"`
	KeyMilestones             *string      `json:"keyMilestones,omitempty"`
	RisksBlockers             *string      `json:"risksBlockers,omitempty"`
	ActionItems               *string      `json:"actionItems,omitempty"`
	LatestUpdate              *string      `json:"latestUpdate,omitempty"`
}

// MoveProjectRequest is the body for POST /v1/projects/{projectId}/move —
// the drag-and-drop status transition from the kanban board.
type MoveProjectRequest struct {
	Status Status `json:"status"`
}

// BoardColumn is one kanban column with its projects.
type BoardColumn struct {
	Status   Status    `json:"status"`
	Title    string    `json:"title"`
	Projects []Project `json:"projects"`
}

// Board is the full kanban board for a business.
type Board struct {
	BusinessID string        `json:"businessId"`
	Columns    []BoardColumn `json:"columns"`
}

// ColumnTitle returns the display title for a board column.
func ColumnTitle(s Status) string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "Review"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}
