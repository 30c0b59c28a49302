package provider

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"
	"github.com/kontorly/worksearch/internal/domain"
	"github.com/kontorly/worksearch/internal/msgraph"
)

const (
	teamsPageSize   = 25
	DefaultTeamsTTL = 60 * time.Second
)

// TeamsProvider searches Teams chat messages through the Graph search API.
// Results are kept in a short-TTL cache keyed by user and query so repeated
// requests within the window skip the remote call. Concurrent population of
// the same key is a benign last-writer-wins race: the cached value is
// idempotent within the TTL.
type TeamsProvider struct {
	graph *msgraph.Client
	cache cache.Cache[string, []domain.SearchResult]
	ttl   time.Duration
}

// NewTeamsProvider creates the adapter with its own result cache. The cache
// is constructed once and owned by the adapter rather than living in a
// process global.
func NewTeamsProvider(graph *msgraph.Client, ttl time.Duration) *TeamsProvider {
	if ttl <= 0 {
		ttl = DefaultTeamsTTL
	}
	return &TeamsProvider{
		graph: graph,
		cache: cache.NewCache[string, []domain.SearchResult]().WithTTL(ttl),
		ttl:   ttl,
	}
}

func (p *TeamsProvider) Name() string { return "teams" }

func (p *TeamsProvider) ContentTypes() []domain.ContentType {
	return []domain.ContentType{domain.ContentTypeTeams}
}

// chatMessage is the subset of the Graph chatMessage resource the adapter reads.
type chatMessage struct {
	ID     string `json:"id"`
	WebURL string `json:"webUrl"`
	From   struct {
		User struct {
			DisplayName string `json:"displayName"`
		} `json:"user"`
	} `json:"from"`
	Body struct {
		Content string `json:"content"`
	} `json:"body"`
}

func (p *TeamsProvider) Search(ctx context.Context, userID, query string, opts Options) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.SearchResult{}, nil
	}

	key := userID + "|" + query
	if cached, ok := p.cache.Get(key); ok {
		return cached, nil
	}

	hits, err := p.graph.Search(ctx, []string{"chatMessage"}, query, teamsPageSize)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for i, hit := range hits {
		var msg chatMessage
		if err := json.Unmarshal(hit.Resource, &msg); err != nil {
			continue
		}
		id := msg.ID
		if id == "" {
			id = hit.HitID
		}
		results = append(results, domain.SearchResult{
			ID:     id,
			Name:   messageTitle(msg, hit.Summary),
			Type:   domain.ContentTypeTeams,
			WebURL: msg.WebURL,
			Score:  rankScore(hit.Rank, i),
		})
	}

	p.cache.Set(key, results, p.ttl)
	return results, nil
}

// messageTitle builds a display string for a chat message: sender plus the
// search snippet, falling back to the message body.
func messageTitle(msg chatMessage, summary string) string {
	text := strings.TrimSpace(summary)
	if text == "" {
		text = strings.TrimSpace(msg.Body.Content)
	}
	if sender := msg.From.User.DisplayName; sender != "" && text != "" {
		return sender + ": " + text
	}
	if text != "" {
		return text
	}
	return "Teams message"
}
