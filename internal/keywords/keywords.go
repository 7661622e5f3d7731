package keywords

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// ErrNoKeywords means nothing was left after tokenizing and filtering.
var ErrNoKeywords = errors.New("could not extract keywords")

// tokenRe uses Unicode \w and \b, which Go's regexp lacks.
var tokenRe = regexp2.MustCompile(`\b\w{4,15}\b`, regexp2.None)

type Ranker struct {
	stopwords map[string]struct{}
}

func New(stopwords []string) *Ranker {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Ranker{stopwords: set}
}

// Tokens lower-cases text and returns every 4-15 character word that is not
// a stop word, in order of appearance.
func (r *Ranker) Tokens(text string) ([]string, error) {
	var out []string
	m, err := tokenRe.FindStringMatch(strings.ToLower(text))
	for m != nil {
		w := m.String()
		if _, stop := r.stopwords[w]; !stop {
			out = append(out, w)
		}
		m, err = tokenRe.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return out, nil
}

// Top returns up to n tokens by descending frequency. Equal counts keep the
// order in which the words first appeared.
func (r *Ranker) Top(text string, n int) ([]string, error) {
	words, err := r.Tokens(text)
	if err != nil {
		return nil, err
	}

	type kv struct {
		K string
		V int
	}
	index := map[string]int{}
	var list []kv
	for _, w := range words {
		if i, ok := index[w]; ok {
			list[i].V++
			continue
		}
		index[w] = len(list)
		list = append(list, kv{w, 1})
	}
	if len(list) == 0 {
		return nil, ErrNoKeywords
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].V > list[j].V
	})
	if n > len(list) {
		n = len(list)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, list[i].K)
	}
	return out, nil
}
