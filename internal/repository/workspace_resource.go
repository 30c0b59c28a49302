package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kontorly/worksearch/internal/domain"
)

// WorkspaceResourceRepository persists workspace allow-list entries.
type WorkspaceResourceRepository struct {
	pool *pgxpool.Pool
}

func NewWorkspaceResourceRepository(pool *pgxpool.Pool) *WorkspaceResourceRepository {
	return &WorkspaceResourceRepository{pool: pool}
}

func (r *WorkspaceResourceRepository) CreateResource(ctx context.Context, resource *domain.WorkspaceResource) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO workspace_resources (id, workspace_id, resource_type, resource_id, resource_url, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		resource.ID,
		resource.WorkspaceID,
		string(resource.Type),
		resource.ResourceID,
		nullableString(resource.ResourceURL),
		nullableString(resource.CreatedBy),
		resource.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create workspace resource: %w", err)
	}
	return nil
}

func (r *WorkspaceResourceRepository) ListResources(ctx context.Context, workspaceID string) ([]domain.WorkspaceResource, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, workspace_id, resource_type, resource_id, COALESCE(resource_url, ''), COALESCE(created_by, ''), created_at
		 FROM workspace_resources
		 WHERE workspace_id = $1
		 ORDER BY created_at`,
		workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspace resources: %w", err)
	}
	defer rows.Close()

	var resources []domain.WorkspaceResource
	for rows.Next() {
		var res domain.WorkspaceResource
		var resourceType string
		if err := rows.Scan(&res.ID, &res.WorkspaceID, &resourceType, &res.ResourceID, &res.ResourceURL, &res.CreatedBy, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workspace resource: %w", err)
		}
		res.Type = domain.ResourceType(resourceType)
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read workspace resources: %w", err)
	}
	return resources, nil
}

func (r *WorkspaceResourceRepository) DeleteResource(ctx context.Context, workspaceID, resourceID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM workspace_resources WHERE workspace_id = $1 AND id = $2`,
		workspaceID, resourceID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete workspace resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkspaceResourceNotFound
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
