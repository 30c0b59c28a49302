package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/kontorly/worksearch/internal/domain"
	"github.com/kontorly/worksearch/internal/msgraph"
)

const filesPageSize = 50

// FilesProvider searches SharePoint/OneDrive content through Microsoft
// Graph. Unscoped searches go through the Graph search API; site-scoped
// searches use the site's drive so folders can be browsed.
type FilesProvider struct {
	graph *msgraph.Client
}

func NewFilesProvider(graph *msgraph.Client) *FilesProvider {
	return &FilesProvider{graph: graph}
}

func (p *FilesProvider) Name() string { return "files" }

func (p *FilesProvider) ContentTypes() []domain.ContentType {
	return []domain.ContentType{domain.ContentTypeFile, domain.ContentTypeFolder}
}

// driveItem is the subset of the Graph driveItem resource the adapter reads.
type driveItem struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	WebURL          string    `json:"webUrl"`
	Folder          *struct{} `json:"folder"`
	ParentReference struct {
		Path string `json:"path"`
	} `json:"parentReference"`
}

func (p *FilesProvider) Search(ctx context.Context, userID, query string, opts Options) ([]domain.SearchResult, error) {
	if opts.SiteID != "" {
		return p.searchSite(ctx, query, opts)
	}
	if strings.TrimSpace(query) == "" {
		return []domain.SearchResult{}, nil
	}

	hits, err := p.graph.Search(ctx, []string{"driveItem"}, buildFileQuery(query, opts.FileExtensions), filesPageSize)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for i, hit := range hits {
		var item driveItem
		if err := json.Unmarshal(hit.Resource, &item); err != nil {
			continue
		}
		r := normalizeDriveItem(item)
		r.Score = rankScore(hit.Rank, i)
		if !p.includeResult(r, opts) {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// searchSite searches within a single site's default drive. An empty query
// lists the drive root so folder-browsing UIs can enumerate containers.
func (p *FilesProvider) searchSite(ctx context.Context, query string, opts Options) ([]domain.SearchResult, error) {
	var resp struct {
		Value []driveItem `json:"value"`
	}

	q := url.Values{}
	q.Set("$top", fmt.Sprintf("%d", filesPageSize))
	q.Set("$select", "id,name,webUrl,folder,parentReference")

	var path string
	if strings.TrimSpace(query) == "" {
		path = fmt.Sprintf("/sites/%s/drive/root/children", url.PathEscape(opts.SiteID))
	} else {
		escaped := strings.ReplaceAll(query, "'", "''")
		path = fmt.Sprintf("/sites/%s/drive/root/search(q='%s')", url.PathEscape(opts.SiteID), url.PathEscape(escaped))
	}

	if err := p.graph.Get(ctx, path, q, &resp); err != nil {
		return nil, err
	}

	total := len(resp.Value)
	results := make([]domain.SearchResult, 0, total)
	for i, item := range resp.Value {
		r := normalizeDriveItem(item)
		// no relevance metric on the drive endpoints; keep API order
		r.Score = positionScore(i, total)
		if !p.includeResult(r, opts) {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// includeResult applies the content-type and extension filters. Folders are
// never subject to the extension filter.
func (p *FilesProvider) includeResult(r domain.SearchResult, opts Options) bool {
	if !domain.ContainsContentType(opts.ContentTypes, r.Type) {
		return false
	}
	if r.Type == domain.ContentTypeFolder {
		return true
	}
	return matchesExtension(r.Name, opts.FileExtensions)
}

func normalizeDriveItem(item driveItem) domain.SearchResult {
	t := domain.ContentTypeFile
	if item.Folder != nil {
		t = domain.ContentTypeFolder
	}
	path := strings.TrimPrefix(item.ParentReference.Path, "/drive/root:")
	if path == "" {
		path = deriveContainerPath(item.WebURL)
	}
	return domain.SearchResult{
		ID:     item.ID,
		Name:   item.Name,
		Type:   t,
		WebURL: item.WebURL,
		Path:   path,
	}
}

// buildFileQuery appends KQL filetype clauses so extension filters are
// pushed down to the backend.
func buildFileQuery(query string, extensions []string) string {
	if len(extensions) == 0 {
		return query
	}
	clauses := make([]string, len(extensions))
	for i, ext := range extensions {
		clauses[i] = "filetype:" + strings.ToLower(ext)
	}
	return fmt.Sprintf("%s AND (%s)", query, strings.Join(clauses, " OR "))
}

// rankScore converts a Graph search rank (1-based, lower is better) into a
// descending score. Positional fallback when the rank is missing.
func rankScore(rank, position int) float64 {
	if rank < 1 {
		rank = position + 1
	}
	return 1.0 / float64(rank)
}

// positionScore scores API-ordered lists descending by position.
func positionScore(position, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(total-position) / float64(total)
}
