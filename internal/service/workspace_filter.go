package service

import (
	"net/url"
	"strings"

	"github.com/kontorly/worksearch/internal/domain"
)

// FilterByWorkspaceResources keeps only results that can be proven to
// belong to one of the workspace's allow-listed resources. Results without
// a usable webUrl are excluded, except planner items which match on an
// exact plan id.
func FilterByWorkspaceResources(results []domain.SearchResult, resources []domain.WorkspaceResource) []domain.SearchResult {
	idKeys := make([]string, 0, len(resources))
	urlKeys := make(map[string]struct{}, len(resources))
	planIDs := make(map[string]struct{})

	for _, res := range resources {
		if res.Type == domain.ResourceTypePlanner {
			if res.ResourceID != "" {
				planIDs[res.ResourceID] = struct{}{}
			}
			continue
		}
		if key := normalizeResourceID(res.ResourceID); key != "" {
			idKeys = append(idKeys, key)
		}
		if key := normalizeURLKey(res.ResourceURL); key != "" {
			urlKeys[key] = struct{}{}
		}
	}

	filtered := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if r.PlanID != "" {
			if _, ok := planIDs[r.PlanID]; ok {
				filtered = append(filtered, r)
			}
			continue
		}
		if r.WebURL == "" {
			continue
		}
		if matchesIDKey(r.WebURL, idKeys) {
			filtered = append(filtered, r)
			continue
		}
		if key := normalizeURLKey(r.WebURL); key != "" {
			if _, ok := urlKeys[key]; ok {
				filtered = append(filtered, r)
			}
		}
	}
	return filtered
}

// normalizeResourceID canonicalizes the textual forms Microsoft site/group
// ids appear in: braces stripped, and for compound ids split on "," only
// the first segment is significant.
func normalizeResourceID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if idx := strings.Index(id, ","); idx >= 0 {
		id = id[:idx]
	}
	return strings.Trim(id, "{}")
}

// normalizeURLKey reduces a URL to hostname plus its first three path
// segments, lower-cased. Best-effort approximation of a site-collection
// boundary; kept as-is deliberately.
func normalizeURLKey(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	segments := make([]string, 0, 3)
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == "" {
			continue
		}
		segments = append(segments, seg)
		if len(segments) == 3 {
			break
		}
	}
	key := u.Host
	if len(segments) > 0 {
		key += "/" + strings.Join(segments, "/")
	}
	return strings.ToLower(key)
}

func matchesIDKey(webURL string, idKeys []string) bool {
	lower := strings.ToLower(webURL)
	for _, key := range idKeys {
		if key != "" && strings.Contains(lower, key) {
			return true
		}
	}
	return false
}
