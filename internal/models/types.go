package models

// DigestRequest is the body accepted by both analysis endpoints. URL must be
// present and a string; an empty string is left for the fetcher to reject.
type DigestRequest struct {
	URL *string `json:"url" binding:"required"`
}

type Bullet struct {
	Claim string `json:"claim"`
}

type SummaryResponse struct {
	SourceURL string   `json:"source_url"`
	Bullets   []Bullet `json:"bullets"`
}

type KeywordsResponse struct {
	SourceURL string   `json:"source_url"`
	Keywords  []string `json:"keywords"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// BatchRecord is one NDJSON line written by the CLI batch command.
type BatchRecord struct {
	URL    string `json:"url"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
