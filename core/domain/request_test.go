package domain

import (
	"strings"
	"testing"

	"newslens-api/core/errors"

	"github.com/stretchr/testify/assert"
)

func TestSearchRequest_WithDefaults(t *testing.T) {
	req := SearchRequest{Query: "  technology  "}.WithDefaults()

	assert.Equal(t, "technology", req.Query)
	assert.Equal(t, "en", req.Lang)
	assert.Equal(t, "US", req.Country)
	assert.Equal(t, TypeArticle, req.Type)
	assert.Equal(t, DefaultLimit, req.Limit)
	assert.NoError(t, req.Validate())
}

func TestSearchRequest_Validate(t *testing.T) {
	tests := []struct {
		name  string
		req   SearchRequest
		field string
	}{
		{"empty query", SearchRequest{Query: ""}, "query"},
		{"long query", SearchRequest{Query: strings.Repeat("a", 201)}, "query"},
		{"bad type", SearchRequest{Query: "go", Type: "video"}, "type"},
		{"negative limit", SearchRequest{Query: "go", Limit: -1}, "limit"},
		{"limit too large", SearchRequest{Query: "go", Limit: 51}, "limit"},
		{"bad lang", SearchRequest{Query: "go", Lang: "english"}, "lang"},
		{"bad country", SearchRequest{Query: "go", Country: "USA"}, "country"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.WithDefaults().Validate()
			var verr *errors.ValidationError
			if assert.ErrorAs(t, err, &verr) {
				assert.Equal(t, tt.field, verr.Field)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{"https://example.com/a", "http://news.example.org/story?id=1"}
	for _, raw := range valid {
		assert.NoError(t, ValidateURL("url", raw), raw)
	}

	invalid := []string{"", "   ", "ftp://example.com/file", "example.com/a", "https://", "javascript:alert(1)", "http://%zz"}
	for _, raw := range invalid {
		assert.True(t, errors.IsValidation(ValidateURL("url", raw)), raw)
	}
}

func TestHostOf(t *testing.T) {
	assert.Equal(t, "example.com", HostOf("https://WWW.Example.com/path"))
	assert.Equal(t, "news.google.com", HostOf("https://news.google.com/rss/articles/abc"))
	assert.Equal(t, "", HostOf("://bad"))
}

func TestItemResult_FailDropsContent(t *testing.T) {
	item := ItemResult{Success: true, Content: &ExtractedContent{Title: "A title", BodyText: "body"}}

	item.Fail("extraction failed")

	assert.False(t, item.Success)
	assert.Nil(t, item.Content)
	assert.Equal(t, "extraction failed", item.Error)
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "apple unveils new chips", NormalizeTitle("  Apple unveils NEW chips! "))
	assert.Equal(t, "rates rise 0 5", NormalizeTitle("Rates rise 0.5%"))
	assert.Equal(t, NormalizeTitle("Storm — hits coast"), NormalizeTitle("storm hits coast"))
	assert.Equal(t, "", NormalizeTitle("..."))
}
