package msgraph

import (
	"context"
	"encoding/json"
)

// searchRequest is the body of POST /search/query.
type searchRequest struct {
	Requests []searchRequestEntry `json:"requests"`
}

type searchRequestEntry struct {
	EntityTypes []string    `json:"entityTypes"`
	Query       searchQuery `json:"query"`
	From        int         `json:"from"`
	Size        int         `json:"size"`
}

type searchQuery struct {
	QueryString string `json:"queryString"`
}

type searchResponse struct {
	Value []struct {
		HitsContainers []struct {
			Hits []SearchHit `json:"hits"`
		} `json:"hitsContainers"`
	} `json:"value"`
}

// SearchHit is a single hit from the Graph search API. Resource is kept raw;
// each adapter decodes the entity shape it asked for.
type SearchHit struct {
	HitID    string          `json:"hitId"`
	Rank     int             `json:"rank"`
	Summary  string          `json:"summary"`
	Resource json.RawMessage `json:"resource"`
}

// Search runs a query through the Graph search API for the given entity
// types and returns the flattened hit list in rank order.
func (c *Client) Search(ctx context.Context, entityTypes []string, query string, size int) ([]SearchHit, error) {
	req := searchRequest{
		Requests: []searchRequestEntry{{
			EntityTypes: entityTypes,
			Query:       searchQuery{QueryString: query},
			From:        0,
			Size:        size,
		}},
	}

	var resp searchResponse
	if err := c.Post(ctx, "/search/query", req, &resp); err != nil {
		return nil, err
	}

	var hits []SearchHit
	for _, v := range resp.Value {
		for _, hc := range v.HitsContainers {
			hits = append(hits, hc.Hits...)
		}
	}
	return hits, nil
}
