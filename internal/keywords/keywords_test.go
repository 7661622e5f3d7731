package keywords

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stopwords = []string{
	"the", "and", "a", "to", "in", "is", "it", "of", "that", "for", "on", "with",
	"as", "this", "was", "are", "from", "by", "an", "at", "be", "have", "not", "or",
	"which", "also", "its", "were", "but", "what", "when", "where", "who", "why",
	"he", "his", "she", "her", "they", "them", "their", "has", "had", "been",
	"will", "can", "would", "could",
}

func TestTopOrdersByFrequency(t *testing.T) {
	r := New(stopwords)
	got, err := r.Top("apple apple banana banana banana cherry", 12)
	require.NoError(t, err)
	assert.Equal(t, []string{"banana", "apple", "cherry"}, got)
}

func TestTopTiesKeepFirstOccurrence(t *testing.T) {
	r := New(stopwords)
	got, err := r.Top("zeta alpha mango alpha zeta mango kiwis", 12)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mango", "kiwis"}, got)
}

func TestTopFiltersAndLowercases(t *testing.T) {
	r := New(stopwords)
	text := "The Network WHICH their network uses is big, but Networking would be " +
		"incomprehensibilities everywhere. Go is fun; Their parsing works."
	got, err := r.Top(text, 12)
	require.NoError(t, err)
	// "incomprehensibilities" has 21 letters and is dropped, not truncated.
	assert.Equal(t, []string{"network", "uses", "networking", "everywhere", "parsing", "works"}, got)
}

func TestTopInvariants(t *testing.T) {
	r := New(stopwords)
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("Lorem ipsum dolor sitamet consectetur adipiscing elitsed doeiusmod tempor incididunt ")
		b.WriteString("labore dolore magna aliqua enimad minim veniam quisnostrud exercitation ullamco laboris ")
	}
	got, err := r.Top(b.String(), 12)
	require.NoError(t, err)
	require.Len(t, got, 12)

	stop := map[string]bool{}
	for _, w := range stopwords {
		stop[w] = true
	}
	for _, w := range got {
		assert.Equal(t, strings.ToLower(w), w)
		n := utf8.RuneCountInString(w)
		assert.True(t, n >= 4 && n <= 15, w)
		assert.False(t, stop[w], w)
	}
}

func TestTopUnicodeWords(t *testing.T) {
	r := New(stopwords)
	got, err := r.Top("Straße straße Größe", 12)
	require.NoError(t, err)
	assert.Equal(t, []string{"straße", "größe"}, got)
}

func TestTopNoKeywords(t *testing.T) {
	r := New(stopwords)
	for _, text := range []string{"", "a an the is it", "their would could which", "Go is fun"} {
		_, err := r.Top(text, 12)
		assert.ErrorIs(t, err, ErrNoKeywords, text)
	}
}
