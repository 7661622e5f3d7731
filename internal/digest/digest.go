package digest

import (
	"context"
	"errors"
	"time"

	"github.com/PuerkitoBio/goquery"

	"lead-digest/internal/config"
	"lead-digest/internal/crawler"
	"lead-digest/internal/keywords"
	"lead-digest/internal/models"
	"lead-digest/internal/parser"
	"lead-digest/internal/summarizer"
	"lead-digest/pkg/logger"
)

// Service runs fetch -> lead extraction -> summarize/rank for one URL.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	client     *crawler.HTTPClient
	parser     *parser.Parser
	summarizer *summarizer.Summarizer
	ranker     *keywords.Ranker
	limit      int
	log        *logger.Logger
}

func New(client *crawler.HTTPClient, p *parser.Parser, s *summarizer.Summarizer, r *keywords.Ranker, limit int, l *logger.Logger) *Service {
	if l == nil {
		l = logger.Nop()
	}
	return &Service{client: client, parser: p, summarizer: s, ranker: r, limit: limit, log: l}
}

// NewFromConfig wires every component from cfg.
func NewFromConfig(cfg *config.Config, l *logger.Logger) *Service {
	return New(
		crawler.NewHTTPClient(cfg.Fetch.Timeout, cfg.Fetch.DialTimeout, cfg.Fetch.MaxBodyBytes, cfg.Fetch.Headers),
		parser.New(cfg.Extract.Selectors),
		summarizer.New(cfg.Summary.MinWords),
		keywords.New(cfg.Keywords.StopWords),
		cfg.Keywords.Limit,
		l,
	)
}

func (s *Service) Summarize(ctx context.Context, url string) (models.SummaryResponse, error) {
	lead, err := s.lead(ctx, url, OpSummarize)
	if err != nil {
		return models.SummaryResponse{}, err
	}
	bullets, err := s.summarizer.Summarize(lead)
	if err != nil {
		if errors.Is(err, summarizer.ErrTooShort) {
			return models.SummaryResponse{}, &EmptyResultError{Op: OpSummarize, Err: err}
		}
		return models.SummaryResponse{}, err
	}
	return models.SummaryResponse{SourceURL: url, Bullets: bullets}, nil
}

func (s *Service) Keywords(ctx context.Context, url string) (models.KeywordsResponse, error) {
	lead, err := s.lead(ctx, url, OpKeywords)
	if err != nil {
		return models.KeywordsResponse{}, err
	}
	top, err := s.ranker.Top(lead, s.limit)
	if err != nil {
		if errors.Is(err, keywords.ErrNoKeywords) {
			return models.KeywordsResponse{}, &EmptyResultError{Op: OpKeywords, Err: err}
		}
		return models.KeywordsResponse{}, err
	}
	return models.KeywordsResponse{SourceURL: url, Keywords: top}, nil
}

func (s *Service) lead(ctx context.Context, url string, op Op) (string, error) {
	doc, err := s.fetch(ctx, url)
	if err != nil {
		return "", err
	}
	lead := s.parser.Lead(doc)
	if lead == "" {
		return "", &NoContentError{Op: op}
	}
	return lead, nil
}

func (s *Service) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	start := time.Now()
	body, finalURL, ct, fetchDur, err := s.client.Fetch(ctx, url)
	if err != nil {
		s.log.Errorf("fetch %s: %v", url, err)
		return nil, &FetchError{URL: url, Err: err}
	}
	defer body.Close()

	doc, err := s.parser.Parse(body, ct)
	if err != nil {
		s.log.Errorf("parse %s: %v", url, err)
		return nil, &FetchError{URL: url, Err: err}
	}
	if body.Truncated() {
		s.log.Debugf("page %s exceeded the body size cap, parsed a truncated document", url)
	}
	s.log.Debugf("fetched %s (final %s) in %s, parsed in %s", url, finalURL, fetchDur, time.Since(start)-fetchDur)
	return doc, nil
}
