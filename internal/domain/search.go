package domain

import "strings"

// ContentType classifies a search result by the kind of item it points at.
type ContentType string

const (
	ContentTypeFile    ContentType = "file"
	ContentTypeFolder  ContentType = "folder"
	ContentTypeEmail   ContentType = "email"
	ContentTypeTeams   ContentType = "teams-message"
	ContentTypePlanner ContentType = "planner"
)

// filter tokens accepted on the contentTypes query parameter
const (
	filterTokenFile   = "file"
	filterTokenFolder = "folder"
	filterTokenEmail  = "email"
	filterTokenTeams  = "teams"
)

// SearchResult is the normalized shape every provider produces. Scores are
// provider-defined and only meaningful for relative ordering; no
// cross-provider normalization is applied.
type SearchResult struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Type   ContentType `json:"type"`
	WebURL string      `json:"webUrl,omitempty"`
	Score  float64     `json:"score"`
	Path   string      `json:"path,omitempty"`
	PlanID string      `json:"planId,omitempty"`
}

// ParseContentTypes splits a comma-separated filter list into recognized
// content-type tokens and file-extension filters. Unknown tokens are treated
// as file extensions (e.g. "pdf", "docx") for the file provider.
func ParseContentTypes(raw string) (types []ContentType, extensions []string) {
	for _, part := range strings.Split(raw, ",") {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		switch token {
		case filterTokenFile:
			types = append(types, ContentTypeFile)
		case filterTokenFolder:
			types = append(types, ContentTypeFolder)
		case filterTokenEmail:
			types = append(types, ContentTypeEmail)
		case filterTokenTeams:
			types = append(types, ContentTypeTeams)
		default:
			extensions = append(extensions, strings.TrimPrefix(token, "."))
		}
	}
	return types, extensions
}

// ContainsContentType reports whether the filter set selects the given type.
// An empty filter set selects everything.
func ContainsContentType(types []ContentType, t ContentType) bool {
	if len(types) == 0 {
		return true
	}
	for _, ct := range types {
		if ct == t {
			return true
		}
	}
	return false
}
