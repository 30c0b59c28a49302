package domain

import "time"

// ResourceType identifies the remote system a workspace resource belongs to.
type ResourceType string

const (
	ResourceTypeSharePoint ResourceType = "sharepoint"
	ResourceTypeTeams      ResourceType = "teams"
	ResourceTypePlanner    ResourceType = "planner"
)

// WorkspaceResource is an allow-list entry scoping which external resources a
// workspace-filtered search may return results from.
type WorkspaceResource struct {
	ID          string
	WorkspaceID string
	Type        ResourceType
	ResourceID  string
	ResourceURL string
	CreatedBy   string
	CreatedAt   time.Time
}

// Validate checks required fields before persistence.
func (r *WorkspaceResource) Validate() error {
	if r.WorkspaceID == "" || r.ResourceID == "" {
		return ErrMissingRequiredField
	}
	switch r.Type {
	case ResourceTypeSharePoint, ResourceTypeTeams, ResourceTypePlanner:
		return nil
	default:
		return ErrInvalidResourceType
	}
}
