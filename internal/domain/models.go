package domain

import "time"

// ============================================================
// Businesses & user profiles
// ============================================================

// Role is the access level of a user profile within a business.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// Business is the tenant scope: every user profile and project belongs to
// exactly one business.
type Business struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserProfile links an authenticated identity to a business and role.
// One profile per identity.
type UserProfile struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	BusinessID string    `json:"businessId"`
	Role       Role      `json:"role"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ProjectAssignment links a user profile to a project (many-to-many).
type ProjectAssignment struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"projectId"`
	UserID     string    `json:"userId"`
	Role       string    `json:"role,omitempty"`
	AssignedAt time.Time `json:"assignedAt"`
}

// CreateBusinessRequest is the body for POST /v1/admin/businesses.
type CreateBusinessRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateBusinessRequest is the body for PATCH /v1/admin/businesses/{businessId}.
// Pointer fields so a description can be cleared with an explicit "".
type UpdateBusinessRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateUserRequest is the body for POST /v1/admin/users.
type CreateUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	BusinessID string `json:"businessId"`
}

// UpdateUserRequest is the body for PATCH /v1/admin/users/{userId}.
type UpdateUserRequest struct {
	Name *string `json:"name,omitempty"`
	Role *Role   `json:"role,omitempty"`
}

// AssignUserRequest is the body for POST /v1/projects/{projectId}/assignments.
type AssignUserRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role,omitempty"`
}

// BusinessStats aggregates project counts for the admin panel.
type BusinessStats struct {
	BusinessID string `json:"businessId"`
	Total      int    `json:"total"`
	Active     int    `json:"active"`
	Completed  int    `json:"completed"`
}
