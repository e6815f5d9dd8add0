// ABOUTME: Response models assembled by the orchestrator
// ABOUTME: Every response carries a success flag and either data or an error message

package domain

// ItemResult is the independent outcome for one candidate in a batch
type ItemResult struct {
	Candidate  CandidateItem     `json:"candidate"`
	Resolution *ResolvedArticle  `json:"resolution,omitempty"`
	Content    *ExtractedContent `json:"content,omitempty"`
	Success    bool              `json:"success"`
	Error      string            `json:"error,omitempty"`
}

// Fail marks the item failed and drops any content
func (r *ItemResult) Fail(msg string) {
	r.Success = false
	r.Error = msg
	r.Content = nil
}

// SearchData is the payload of a successful search
type SearchData struct {
	Query string       `json:"query"`
	Type  string       `json:"type"`
	Count int          `json:"count"`
	Items []ItemResult `json:"items"`
}

// SearchResponse is the result object of a search request
type SearchResponse struct {
	Success bool        `json:"success"`
	Data    *SearchData `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ArticleData is the payload of a single-article request
type ArticleData struct {
	Resolution ResolvedArticle   `json:"resolution"`
	Content    *ExtractedContent `json:"content,omitempty"`
}

// ArticleResponse is the result object of a single-article request
type ArticleResponse struct {
	Success bool         `json:"success"`
	Data    *ArticleData `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}
