package msgraph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/kontorly/worksearch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithHTTP(srv.Client(), srv.URL)
}

func TestClientGet_DecodesResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/messages", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("$top"))
		w.Write([]byte(`{"value":[{"id":"m-1"}]}`))
	})

	var out struct {
		Value []struct {
			ID string `json:"id"`
		} `json:"value"`
	}
	q := url.Values{}
	q.Set("$top", "5")
	err := c.Get(context.Background(), "/me/messages", q, &out)

	require.NoError(t, err)
	require.Len(t, out.Value, 1)
	assert.Equal(t, "m-1", out.Value[0].ID)
}

func TestClient_UnauthorizedMapsToUpstreamAuth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"InvalidAuthenticationToken","message":"token expired"}}`, http.StatusUnauthorized)
	})

	err := c.Get(context.Background(), "/me", nil, nil)

	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrCodeUpstreamAuth, derr.Code)
	assert.Contains(t, derr.Error(), "InvalidAuthenticationToken")
}

func TestClient_ServerErrorMapsToUpstreamUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusBadGateway)
	})

	err := c.Get(context.Background(), "/me", nil, nil)

	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrCodeUpstreamUnavailable, derr.Code)
}

func TestClient_MalformedJSONMapsToUpstreamUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": [`))
	})

	var out map[string]any
	err := c.Get(context.Background(), "/me", nil, &out)

	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrCodeUpstreamUnavailable, derr.Code)
}

func TestClient_TransportErrorMapsToUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := NewClientWithHTTP(srv.Client(), srv.URL)
	srv.Close()

	err := c.Get(context.Background(), "/me", nil, nil)

	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrCodeUpstreamUnavailable, derr.Code)
}

func TestSearch_FlattensHitsContainers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search/query", r.URL.Path)
		w.Write([]byte(`{"value":[
			{"hitsContainers":[
				{"hits":[{"hitId":"a","rank":1},{"hitId":"b","rank":2}]},
				{"hits":[{"hitId":"c","rank":3}]}
			]},
			{"hitsContainers":[{"hits":[{"hitId":"d","rank":4}]}]}
		]}`))
	})

	hits, err := c.Search(context.Background(), []string{"driveItem"}, "bolig", 50)

	require.NoError(t, err)
	require.Len(t, hits, 4)
	assert.Equal(t, "a", hits[0].HitID)
	assert.Equal(t, "d", hits[3].HitID)
	assert.Equal(t, 4, hits[3].Rank)
}

func TestSearch_EmptyResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value":[]}`))
	})

	hits, err := c.Search(context.Background(), []string{"chatMessage"}, "x", 25)

	require.NoError(t, err)
	assert.Empty(t, hits)
}
