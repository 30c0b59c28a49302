package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContentTypes(t *testing.T) {
	types, extensions := ParseContentTypes("file,email,teams,folder")
	assert.Equal(t, []ContentType{ContentTypeFile, ContentTypeEmail, ContentTypeTeams, ContentTypeFolder}, types)
	assert.Empty(t, extensions)
}

func TestParseContentTypes_UnknownTokensBecomeExtensions(t *testing.T) {
	types, extensions := ParseContentTypes("file,pdf,.docx")
	assert.Equal(t, []ContentType{ContentTypeFile}, types)
	assert.Equal(t, []string{"pdf", "docx"}, extensions)
}

func TestParseContentTypes_TrimsAndLowercases(t *testing.T) {
	types, extensions := ParseContentTypes(" File , EMAIL , PDF ")
	assert.Equal(t, []ContentType{ContentTypeFile, ContentTypeEmail}, types)
	assert.Equal(t, []string{"pdf"}, extensions)
}

func TestParseContentTypes_Empty(t *testing.T) {
	types, extensions := ParseContentTypes("")
	assert.Empty(t, types)
	assert.Empty(t, extensions)
}

func TestContainsContentType(t *testing.T) {
	assert.True(t, ContainsContentType(nil, ContentTypeFile))
	assert.True(t, ContainsContentType([]ContentType{ContentTypeFile}, ContentTypeFile))
	assert.False(t, ContainsContentType([]ContentType{ContentTypeFile}, ContentTypeEmail))
}
