// Package provider contains the search adapters wrapping remote backends.
// Each adapter normalizes its backend's response into domain.SearchResult;
// an empty result set is never an error.
package provider

import (
	"context"
	"net/url"
	"strings"

	"github.com/kontorly/worksearch/internal/domain"
)

// Options carries optional scoping for a provider search.
type Options struct {
	SiteID         string
	ContentTypes   []domain.ContentType
	FileExtensions []string
}

// SearchProvider is the capability every backend adapter implements.
// Implementations fail only on transport/auth problems; "no results" is a
// valid empty list.
type SearchProvider interface {
	Name() string
	ContentTypes() []domain.ContentType
	Search(ctx context.Context, userID, query string, opts Options) ([]domain.SearchResult, error)
}

// Selected reports whether the filter set selects any of the provider's
// content types. An empty filter selects every provider.
func Selected(p SearchProvider, filter []domain.ContentType) bool {
	if len(filter) == 0 {
		return true
	}
	for _, ct := range p.ContentTypes() {
		for _, f := range filter {
			if f == ct {
				return true
			}
		}
	}
	return false
}

// deriveContainerPath extracts a hierarchical location from an item's web
// URL when the backend does not supply one: the URL path minus the final
// segment.
func deriveContainerPath(webURL string) string {
	if webURL == "" {
		return ""
	}
	u, err := url.Parse(webURL)
	if err != nil || u.Path == "" {
		return ""
	}
	p := strings.TrimRight(u.Path, "/")
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return "/"
	}
	return p[:idx]
}

// matchesExtension reports whether name ends with one of the given file
// extensions. An empty filter matches everything.
func matchesExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, "."+strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
