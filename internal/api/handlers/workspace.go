package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kontorly/worksearch/internal/api"
	"github.com/kontorly/worksearch/internal/domain"
)

// WorkspaceResourceStore persists workspace allow-list entries.
type WorkspaceResourceStore interface {
	ListResources(ctx context.Context, workspaceID string) ([]domain.WorkspaceResource, error)
	CreateResource(ctx context.Context, resource *domain.WorkspaceResource) error
	DeleteResource(ctx context.Context, workspaceID, resourceID string) error
}

type WorkspaceHandler struct {
	store WorkspaceResourceStore
}

func NewWorkspaceHandler(store WorkspaceResourceStore) *WorkspaceHandler {
	return &WorkspaceHandler{store: store}
}

type CreateResourceRequest struct {
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	ResourceURL  string `json:"resource_url,omitempty"`
	CreatedBy    string `json:"created_by,omitempty"`
}

type ResourceResponse struct {
	ID           string `json:"id"`
	WorkspaceID  string `json:"workspace_id"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	ResourceURL  string `json:"resource_url,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type ListResourcesResponse struct {
	Resources []*ResourceResponse `json:"resources"`
}

// List handles GET /workspaces/{workspaceID}/resources.
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspaceID")

	resources, err := h.store.ListResources(r.Context(), workspaceID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*ResourceResponse, len(resources))
	for i, res := range resources {
		responses[i] = toResourceResponse(&res)
	}
	api.JSON(w, http.StatusOK, ListResourcesResponse{Resources: responses})
}

// Create handles POST /workspaces/{workspaceID}/resources.
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspaceID")

	var req CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resource := &domain.WorkspaceResource{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Type:        domain.ResourceType(req.ResourceType),
		ResourceID:  req.ResourceID,
		ResourceURL: req.ResourceURL,
		CreatedBy:   req.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if err := resource.Validate(); err != nil {
		api.HandleError(w, err)
		return
	}

	if err := h.store.CreateResource(r.Context(), resource); err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, toResourceResponse(resource))
}

// Delete handles DELETE /workspaces/{workspaceID}/resources/{resourceID}.
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspaceID")
	resourceID := chi.URLParam(r, "resourceID")

	if err := h.store.DeleteResource(r.Context(), workspaceID, resourceID); err != nil {
		api.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toResourceResponse(res *domain.WorkspaceResource) *ResourceResponse {
	return &ResourceResponse{
		ID:           res.ID,
		WorkspaceID:  res.WorkspaceID,
		ResourceType: string(res.Type),
		ResourceID:   res.ResourceID,
		ResourceURL:  res.ResourceURL,
		CreatedAt:    res.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
