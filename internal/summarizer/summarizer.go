package summarizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"lead-digest/internal/models"
)

// ErrTooShort means no sentence survived the length filter.
var ErrTooShort = errors.New("content too short to summarize")

// sentenceBoundary matches whitespace after '.' or '?' unless the text just
// before it looks like "U.S." or "Mr.". Go's regexp has no lookbehind.
var sentenceBoundary = regexp2.MustCompile(`(?<!\w\.\w.)(?<![A-Z][a-z]\.)(?<=\.|\?)\s`, regexp2.None)

type Summarizer struct {
	minWords int
}

// New returns a Summarizer that drops sentences with fewer than minWords words.
func New(minWords int) *Summarizer {
	return &Summarizer{minWords: minWords}
}

// Summarize turns lead text into one bullet per sentence, in order.
func (s *Summarizer) Summarize(text string) ([]models.Bullet, error) {
	sentences, err := Split(text)
	if err != nil {
		return nil, err
	}
	var bullets []models.Bullet
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" || len(strings.Fields(sentence)) < s.minWords {
			continue
		}
		bullets = append(bullets, models.Bullet{Claim: sentence})
	}
	if len(bullets) == 0 {
		return nil, ErrTooShort
	}
	return bullets, nil
}

// Split cuts text at every sentence boundary. Pieces are returned untrimmed.
func Split(text string) ([]string, error) {
	// regexp2 reports match positions in runes
	runes := []rune(text)
	var parts []string
	last := 0
	m, err := sentenceBoundary.FindStringMatch(text)
	for m != nil {
		parts = append(parts, string(runes[last:m.Index]))
		last = m.Index + m.Length
		m, err = sentenceBoundary.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("split sentences: %w", err)
	}
	return append(parts, string(runes[last:])), nil
}
