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
// User profiles — CRUD via PostgREST
// ============================================================

type profileRow struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	BusinessID string `json:"business_id"`
	Role       string `json:"role"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func (r profileRow) toDomain() domain.UserProfile {
	return domain.UserProfile{
		ID:         r.ID,
		UserID:     r.UserID,
		BusinessID: r.BusinessID,
		Role:       domain.Role(r.Role),
		Name:       r.Name,
		Email:      r.Email,
		CreatedAt:  parseTimestamp(r.CreatedAt),
		UpdatedAt:  parseTimestamp(r.UpdatedAt),
	}
}

// ListProfilesByBusiness returns all user profiles scoped to a business.
func (c *Client) ListProfilesByBusiness(ctx context.Context, businessID string) ([]domain.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListProfilesByBusiness")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	path := fmt.Sprintf("user_profiles?business_id=eq.%s&order=created_at.asc", businessID)
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/user_profiles", Err: err}
	}
	if emptyResult(body) {
		return []domain.UserProfile{}, nil
	}

	var rows []profileRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	out := make([]domain.UserProfile, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// GetProfile fetches a profile by its own id. A miss returns (nil, nil).
func (c *Client) GetProfile(ctx context.Context, profileID string) (*domain.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetProfile")
	defer span.End()
	span.SetAttributes(attribute.String("profile.id", profileID))

	body, err := c.doGet(ctx, fmt.Sprintf("user_profiles?id=eq.%s&limit=1", profileID))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/user_profiles", Err: err}
	}
	if emptyResult(body) {
		return nil, nil
	}

	var rows []profileRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	p := rows[0].toDomain()
	return &p, nil
}

// GetProfileByUserID fetches the profile linked to an auth identity.
// A miss returns (nil, nil); the bootstrap flow treats that as first login.
func (c *Client) GetProfileByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetProfileByUserID")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	body, err := c.doGet(ctx, fmt.Sprintf("user_profiles?user_id=eq.%s&limit=1", userID))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/user_profiles", Err: err}
	}
	if emptyResult(body) {
		return nil, nil
	}

	var rows []profileRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	p := rows[0].toDomain()
	return &p, nil
}

// CreateProfile inserts a user profile and returns the stored row.
func (c *Client) CreateProfile(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateProfile")
	defer span.End()

	body, err := c.doPost(ctx, "user_profiles", map[string]any{
		"id":          profile.ID,
		"user_id":     profile.UserID,
		"business_id": profile.BusinessID,
		"role":        string(profile.Role),
		"name":        profile.Name,
		"email":       profile.Email,
		"created_at":  profile.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  profile.UpdatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/user_profiles", Err: err}
	}

	var rows []profileRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode created profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("supabase returned no row for created profile")
	}
	created := rows[0].toDomain()
	return &created, nil
}

// UpdateProfile patches the given columns. Empty representation maps
// to ErrNotFound.
func (c *Client) UpdateProfile(ctx context.Context, profileID string, fields map[string]any) (*domain.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateProfile")
	defer span.End()
	span.SetAttributes(attribute.String("profile.id", profileID))

	body, err := c.doPatch(ctx, fmt.Sprintf("user_profiles?id=eq.%s", profileID), fields)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/user_profiles", Err: err}
	}
	if emptyResult(body) {
		return nil, &domain.ErrNotFound{Resource: "profile", ID: profileID}
	}

	var rows []profileRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode updated profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "profile", ID: profileID}
	}
	updated := rows[0].toDomain()
	return &updated, nil
}

// DeleteProfile removes a profile. Missing rows are a no-op.
func (c *Client) DeleteProfile(ctx context.Context, profileID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteProfile")
	defer span.End()
	span.SetAttributes(attribute.String("profile.id", profileID))

	if err := c.doDelete(ctx, fmt.Sprintf("user_profiles?id=eq.%s", profileID)); err != nil {
		return &domain.ErrExternalService{Service: "supabase/user_profiles", Err: err}
	}
	return nil
}
