package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Businesses — CRUD via PostgREST
// ============================================================

type businessRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (r businessRow) toDomain() domain.Business {
	return domain.Business{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   parseTimestamp(r.CreatedAt),
		UpdatedAt:   parseTimestamp(r.UpdatedAt),
	}
}

// ListBusinesses returns all businesses, newest update first.
func (c *Client) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListBusinesses")
	defer span.End()

	body, err := c.doGet(ctx, "businesses?order=updated_at.desc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/businesses", Err: err}
	}
	if emptyResult(body) {
		return []domain.Business{}, nil
	}

	var rows []businessRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode businesses: %w", err)
	}

	out := make([]domain.Business, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// GetBusiness fetches one business. A miss returns (nil, nil).
func (c *Client) GetBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetBusiness")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	body, err := c.doGet(ctx, fmt.Sprintf("businesses?id=eq.%s&limit=1", businessID))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/businesses", Err: err}
	}
	if emptyResult(body) {
		return nil, nil
	}

	var rows []businessRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode business: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	b := rows[0].toDomain()
	return &b, nil
}

// GetBusinessByName fetches a business by exact name. Used by the
// bootstrap flow to find the default business. A miss returns (nil, nil).
func (c *Client) GetBusinessByName(ctx context.Context, name string) (*domain.Business, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetBusinessByName")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("businesses?name=eq.%s&limit=1", url.QueryEscape(name)))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/businesses", Err: err}
	}
	if emptyResult(body) {
		return nil, nil
	}

	var rows []businessRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode business: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	b := rows[0].toDomain()
	return &b, nil
}

// CreateBusiness inserts a business and returns the stored row.
func (c *Client) CreateBusiness(ctx context.Context, biz *domain.Business) (*domain.Business, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateBusiness")
	defer span.End()

	body, err := c.doPost(ctx, "businesses", map[string]any{
		"id":          biz.ID,
		"name":        biz.Name,
		"description": biz.Description,
		"created_at":  biz.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  biz.UpdatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/businesses", Err: err}
	}

	var rows []businessRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode created business: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("supabase returned no row for created business")
	}
	created := rows[0].toDomain()
	return &created, nil
}

// UpdateBusiness patches the given columns. Empty representation maps
// to ErrNotFound.
func (c *Client) UpdateBusiness(ctx context.Context, businessID string, fields map[string]any) (*domain.Business, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateBusiness")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	body, err := c.doPatch(ctx, fmt.Sprintf("businesses?id=eq.%s", businessID), fields)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/businesses", Err: err}
	}
	if emptyResult(body) {
		return nil, &domain.ErrNotFound{Resource: "business", ID: businessID}
	}

	var rows []businessRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode updated business: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "business", ID: businessID}
	}
	updated := rows[0].toDomain()
	return &updated, nil
}

// DeleteBusiness removes a business. Missing rows are a no-op.
func (c *Client) DeleteBusiness(ctx context.Context, businessID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteBusiness")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	if err := c.doDelete(ctx, fmt.Sprintf("businesses?id=eq.%s", businessID)); err != nil {
		return &domain.ErrExternalService{Service: "supabase/businesses", Err: err}
	}
	return nil
}
