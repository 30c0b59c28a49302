package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/kontorly/worksearch/internal/domain"
	"github.com/kontorly/worksearch/internal/msgraph"
)

const emailPageSize = 25

// EmailProvider searches the user's mailbox through the Graph messages
// endpoint. $search returns messages in relevance order without an explicit
// rank, so scores are positional.
type EmailProvider struct {
	graph *msgraph.Client
}

func NewEmailProvider(graph *msgraph.Client) *EmailProvider {
	return &EmailProvider{graph: graph}
}

func (p *EmailProvider) Name() string { return "email" }

func (p *EmailProvider) ContentTypes() []domain.ContentType {
	return []domain.ContentType{domain.ContentTypeEmail}
}

func (p *EmailProvider) Search(ctx context.Context, userID, query string, opts Options) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.SearchResult{}, nil
	}

	var resp struct {
		Value []struct {
			ID      string `json:"id"`
			Subject string `json:"subject"`
			WebLink string `json:"webLink"`
		} `json:"value"`
	}

	q := url.Values{}
	q.Set("$search", fmt.Sprintf("%q", query))
	q.Set("$top", fmt.Sprintf("%d", emailPageSize))
	q.Set("$select", "id,subject,webLink")

	path := fmt.Sprintf("/users/%s/messages", url.PathEscape(userID))
	if err := p.graph.Get(ctx, path, q, &resp); err != nil {
		return nil, err
	}

	total := len(resp.Value)
	results := make([]domain.SearchResult, 0, total)
	for i, msg := range resp.Value {
		name := msg.Subject
		if name == "" {
			name = "(no subject)"
		}
		results = append(results, domain.SearchResult{
			ID:     msg.ID,
			Name:   name,
			Type:   domain.ContentTypeEmail,
			WebURL: msg.WebLink,
			Score:  positionScore(i, total),
		})
	}
	return results, nil
}
