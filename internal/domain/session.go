package domain

// ============================================================
// Session & auth — request/response types (frontend API contract)
// ============================================================

// Identity is the authenticated user as asserted by the hosted auth
// service's access token.
type Identity struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// Session is returned from GET /v1/session after the bootstrap flow ran.
// It replaces the frontend's global mutable user/profile state with an
// explicit object the views receive.
type Session struct {
	User         Identity     `json:"user"`
	Profile      *UserProfile `json:"profile"`
	BusinessName string       `json:"businessName,omitempty"`
	// Seeded is true when this request created the sample projects.
	Seeded bool `json:"seeded"`
}

// DevLoginRequest is the body for POST /v1/auth/dev-login (DEV_AUTH only).
type DevLoginRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

// DevLoginResponse carries the locally signed access token.
type DevLoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

// DashboardSummary is the aggregate view for GET
// /v1/businesses/{businessId}/dashboard.
type DashboardSummary struct {
	BusinessID     string         `json:"businessId"`
	TotalProjects  int            `json:"totalProjects"`
	ByStatus       map[Status]int `json:"byStatus"`
	Overdue        int            `json:"overdue"`
	CompletionRate float64        `json:"completionRate"`
	WeeklyHours    int            `json:"weeklyHours"`
	RecentProjects []Project      `json:"recentProjects"`
}

// BoardMetrics is the JSON snapshot for GET /v1/metrics/board.
type BoardMetrics struct {
	ProjectsCreated   int64   `json:"projectsCreated"`
	ProjectsDeleted   int64   `json:"projectsDeleted"`
	StatusTransitions int64   `json:"statusTransitions"`
	SeedRuns          int64   `json:"seedRuns"`
	ListFallbacks     int64   `json:"listFallbacks"`
	CacheHitRate      float64 `json:"cacheHitRate"`
	Period            string  `json:"period"`
}

// HealthStatus is the response for GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth describes one dependency in the health report.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latency_ms"`
	LastChecked string `json:"last_checked"`
}
