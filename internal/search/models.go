package search

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty" description:"Max results (default: 10)"`
}

type SearchResult struct {
	ChunkID    string  `json:"chunk_id"`
	DocumentID string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
	Rank       int     `json:"rank"`
	// Sources lists which ranked lists produced the result:
	// "semantic", "keyword", or both for fused hits.
	Sources []string `json:"sources,omitempty"`
}

type SearchResponse struct {
	Query  string         `json:"query"`
	Result []SearchResult `json:"result"`
	Count  int            `json:"count"`
	Method string         `json:"method"` // "semantic", "keyword", "hybrid"
}
