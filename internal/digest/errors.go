package digest

import "fmt"

// Op names the analysis a request asked for; error wording depends on it.
type Op string

const (
	OpSummarize Op = "summarize"
	OpKeywords  Op = "keywords"
)

// FetchError covers everything between issuing the GET and holding a parsed
// document: bad URL, network failure, timeout, non-2xx status, unreadable body.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Data stream analysis failed. The website may be blocking access. Error: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NoContentError means the page had no lead section.
type NoContentError struct {
	Op Op
}

func (e *NoContentError) Error() string {
	if e.Op == OpKeywords {
		return "Could not find any main content to extract keywords from."
	}
	return "Could not extract a professional summary. The page may not have a standard introductory section."
}

// EmptyResultError means the lead section existed but yielded no bullets or
// keywords.
type EmptyResultError struct {
	Op  Op
	Err error
}

func (e *EmptyResultError) Error() string {
	if e.Op == OpKeywords {
		return "Could not extract keywords from the page content."
	}
	return "The main content was too short to be summarized into key points."
}

func (e *EmptyResultError) Unwrap() error { return e.Err }
