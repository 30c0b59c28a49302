package handlers

import (
	"context"
	"net/http"

	"github.com/kontorly/worksearch/internal/api"
	"github.com/kontorly/worksearch/internal/domain"
	"github.com/kontorly/worksearch/internal/service"
)

// SearchService runs a unified search across the configured providers.
type SearchService interface {
	Search(ctx context.Context, input service.SearchInput) (*service.SearchOutput, error)
}

type SearchHandler struct {
	svc SearchService
}

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// SearchResponse is the unified search envelope. SuggestedQuery is always
// present, null when no correction applies.
type SearchResponse struct {
	Results        []domain.SearchResult `json:"results"`
	SuggestedQuery *string               `json:"suggestedQuery"`
}

// Search handles GET /search with parameters q, userId, siteId,
// contentTypes and workspace.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID := q.Get("userId")
	if userID == "" {
		api.Error(w, http.StatusBadRequest, "userId is required")
		return
	}

	types, extensions := domain.ParseContentTypes(q.Get("contentTypes"))

	input := service.SearchInput{
		Query:          q.Get("q"),
		UserID:         userID,
		SiteID:         q.Get("siteId"),
		WorkspaceID:    q.Get("workspace"),
		ContentTypes:   types,
		FileExtensions: extensions,
	}

	output, err := h.svc.Search(r.Context(), input)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	results := output.Results
	if results == nil {
		results = []domain.SearchResult{}
	}

	api.JSON(w, http.StatusOK, SearchResponse{
		Results:        results,
		SuggestedQuery: output.SuggestedQuery,
	})
}
