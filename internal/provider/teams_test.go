package provider

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kontorly/worksearch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamsProvider_Search(t *testing.T) {
	graph := fakeGraph(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/query", r.URL.Path)
		w.Write(searchHitsBody(t, []map[string]any{
			{
				"hitId": "h-1", "rank": 1, "summary": "status for visningen",
				"resource": map[string]any{
					"id":     "msg-1",
					"webUrl": "https://teams.microsoft.com/l/message/1",
					"from":   map[string]any{"user": map[string]any{"displayName": "Kari Nordmann"}},
				},
			},
			{
				"hitId": "h-2", "rank": 2,
				"resource": map[string]any{
					"webUrl": "https://teams.microsoft.com/l/message/2",
					"body":   map[string]any{"content": "se vedlagt prospekt"},
				},
			},
		}))
	})

	p := NewTeamsProvider(graph, DefaultTeamsTTL)
	results, err := p.Search(context.Background(), "u-1", "visning", Options{})

	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "msg-1", results[0].ID)
	assert.Equal(t, "Kari Nordmann: status for visningen", results[0].Name)
	assert.Equal(t, domain.ContentTypeTeams, results[0].Type)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)

	// hit id backfills a missing message id, body backfills the summary
	assert.Equal(t, "h-2", results[1].ID)
	assert.Equal(t, "se vedlagt prospekt", results[1].Name)
}

func TestTeamsProvider_CachesPerUserAndQuery(t *testing.T) {
	var calls atomic.Int32
	graph := fakeGraph(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write(searchHitsBody(t, []map[string]any{
			{"hitId": "h-1", "rank": 1, "resource": map[string]any{"id": "msg-1"}},
		}))
	})

	p := NewTeamsProvider(graph, time.Minute)
	ctx := context.Background()

	_, err := p.Search(ctx, "u-1", "visning", Options{})
	require.NoError(t, err)
	_, err = p.Search(ctx, "u-1", "visning", Options{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	// a different user or query misses the cache
	_, err = p.Search(ctx, "u-2", "visning", Options{})
	require.NoError(t, err)
	_, err = p.Search(ctx, "u-1", "prospekt", Options{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestTeamsProvider_ErrorsAreNotCached(t *testing.T) {
	var calls atomic.Int32
	graph := fakeGraph(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, `{"error":{"code":"serviceNotAvailable","message":"down"}}`, http.StatusServiceUnavailable)
			return
		}
		w.Write(searchHitsBody(t, []map[string]any{
			{"hitId": "h-1", "rank": 1, "resource": map[string]any{"id": "msg-1"}},
		}))
	})

	p := NewTeamsProvider(graph, time.Minute)
	ctx := context.Background()

	_, err := p.Search(ctx, "u-1", "visning", Options{})
	require.Error(t, err)

	results, err := p.Search(ctx, "u-1", "visning", Options{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestTeamsProvider_EmptyQueryReturnsNothing(t *testing.T) {
	graph := fakeGraph(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty query")
	})

	p := NewTeamsProvider(graph, DefaultTeamsTTL)
	results, err := p.Search(context.Background(), "u-1", "  ", Options{})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMessageTitle(t *testing.T) {
	msg := chatMessage{}
	msg.From.User.DisplayName = "Ola"
	msg.Body.Content = "hei"

	assert.Equal(t, "Ola: snippet", messageTitle(msg, "snippet"))
	assert.Equal(t, "Ola: hei", messageTitle(msg, ""))

	var empty chatMessage
	assert.Equal(t, "bare text", messageTitle(empty, "bare text"))
	assert.Equal(t, "Teams message", messageTitle(empty, ""))
}
