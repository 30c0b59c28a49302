package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kontorly/worksearch/internal/domain"
	"github.com/kontorly/worksearch/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSearchService struct {
	mock.Mock
}

func (m *mockSearchService) Search(ctx context.Context, input service.SearchInput) (*service.SearchOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*service.SearchOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSearchHandler_Success(t *testing.T) {
	svc := new(mockSearchService)
	suggestion := "bolig"
	svc.On("Search", mock.Anything, mock.MatchedBy(func(in service.SearchInput) bool {
		return in.Query == "bolih" && in.UserID == "u-1"
	})).Return(&service.SearchOutput{
		Results: []domain.SearchResult{
			{ID: "r-1", Name: "bolig.pdf", Type: domain.ContentTypeFile, Score: 0.9},
		},
		SuggestedQuery: &suggestion,
	}, nil)

	h := NewSearchHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/search?q=bolih&userId=u-1", nil)
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "r-1", resp.Results[0].ID)
	require.NotNil(t, resp.SuggestedQuery)
	assert.Equal(t, "bolig", *resp.SuggestedQuery)
	svc.AssertExpectations(t)
}

func TestSearchHandler_MissingUserID(t *testing.T) {
	svc := new(mockSearchService)
	h := NewSearchHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/search?q=bolig", nil)
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"userId is required"}`, rec.Body.String())
	svc.AssertNotCalled(t, "Search")
}

func TestSearchHandler_ParsesContentTypesAndExtensions(t *testing.T) {
	svc := new(mockSearchService)
	svc.On("Search", mock.Anything, mock.MatchedBy(func(in service.SearchInput) bool {
		return len(in.ContentTypes) == 2 &&
			in.ContentTypes[0] == domain.ContentTypeFile &&
			in.ContentTypes[1] == domain.ContentTypeEmail &&
			len(in.FileExtensions) == 1 && in.FileExtensions[0] == "pdf" &&
			in.SiteID == "s-1" && in.WorkspaceID == "w-1"
	})).Return(&service.SearchOutput{}, nil)

	h := NewSearchHandler(svc)
	req := httptest.NewRequest(http.MethodGet,
		"/search?q=x&userId=u-1&siteId=s-1&workspace=w-1&contentTypes=file,email,pdf", nil)
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestSearchHandler_NilResultsRenderAsEmptyArray(t *testing.T) {
	svc := new(mockSearchService)
	svc.On("Search", mock.Anything, mock.Anything).Return(&service.SearchOutput{}, nil)

	h := NewSearchHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/search?q=x&userId=u-1", nil)
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[],"suggestedQuery":null}`, rec.Body.String())
}

func TestSearchHandler_ValidationErrorMapsTo400(t *testing.T) {
	svc := new(mockSearchService)
	svc.On("Search", mock.Anything, mock.Anything).Return(nil, domain.ErrMissingUserID)

	h := NewSearchHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/search?q=x&userId=u-1", nil)
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchHandler_UpstreamAuthMapsTo401(t *testing.T) {
	svc := new(mockSearchService)
	svc.On("Search", mock.Anything, mock.Anything).
		Return(nil, domain.NewDomainErrorWithCause(domain.ErrCodeUpstreamAuth, "graph rejected credentials", errors.New("expired")))

	h := NewSearchHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/search?q=x&userId=u-1", nil)
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
