package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-digest/internal/digest"
	"lead-digest/internal/models"
)

type slowAnalyzer struct {
	inflight, peak atomic.Int32
}

func (s *slowAnalyzer) enter() func() {
	n := s.inflight.Add(1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	return func() { s.inflight.Add(-1) }
}

func (s *slowAnalyzer) Summarize(_ context.Context, url string) (models.SummaryResponse, error) {
	defer s.enter()()
	if strings.Contains(url, "bad") {
		return models.SummaryResponse{}, errors.New("boom")
	}
	return models.SummaryResponse{SourceURL: url, Bullets: []models.Bullet{{Claim: "A claim of four words."}}}, nil
}

func (s *slowAnalyzer) Keywords(_ context.Context, url string) (models.KeywordsResponse, error) {
	defer s.enter()()
	return models.KeywordsResponse{SourceURL: url, Keywords: []string{"word"}}, nil
}

func TestRunBatchKeepsOrderAndLimit(t *testing.T) {
	a := &slowAnalyzer{}
	urls := []string{"https://a", "https://bad", "https://c", "https://d", "https://e", "https://f"}

	recs := runBatch(context.Background(), a, digest.OpSummarize, urls, 2)
	require.Len(t, recs, len(urls))
	for i, r := range recs {
		assert.Equal(t, urls[i], r.URL)
	}
	assert.Equal(t, "boom", recs[1].Error)
	assert.Nil(t, recs[1].Result)
	assert.Empty(t, recs[0].Error)
	assert.IsType(t, models.SummaryResponse{}, recs[0].Result)
	assert.LessOrEqual(t, a.peak.Load(), int32(2))
}

func TestRunBatchKeywordsMode(t *testing.T) {
	recs := runBatch(context.Background(), &slowAnalyzer{}, digest.OpKeywords, []string{"https://a"}, 0)
	require.Len(t, recs, 1)
	assert.Equal(t, models.KeywordsResponse{SourceURL: "https://a", Keywords: []string{"word"}}, recs[0].Result)
}

func TestBatchCommand(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><body><main><p>Gophers dig tunnels under gardens. Gophers eat roots and bulbs.</p></main></body></html>`))
	}))
	defer ts.Close()

	dir := t.TempDir()
	in := filepath.Join(dir, "urls.ndjson")
	out := filepath.Join(dir, "out.ndjson")
	require.NoError(t, os.WriteFile(in, []byte(ts.URL+"/ok\n{\"url\":\""+ts.URL+"/missing\"}\n"), 0o644))

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"lead-digest", "--log-level", "error", "batch", "--input", in, "--output", out, "--mode", "keywords"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var ok struct {
		URL    string                  `json:"url"`
		Result models.KeywordsResponse `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ok))
	assert.Equal(t, ts.URL+"/ok", ok.URL)
	assert.Equal(t, "gophers", ok.Result.Keywords[0])

	var failed models.BatchRecord
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failed))
	assert.Contains(t, failed.Error, "Data stream analysis failed")
}

func TestSummarizeCommand(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><article><p>Gophers dig tunnels under gardens. Gophers eat roots and bulbs.</p></article></body></html>`))
	}))
	defer ts.Close()

	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	require.NoError(t, app.Run([]string{"lead-digest", "--log-level", "error", "summarize", ts.URL}))

	var res models.SummaryResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, []models.Bullet{
		{Claim: "Gophers dig tunnels under gardens."},
		{Claim: "Gophers eat roots and bulbs."},
	}, res.Bullets)
}
