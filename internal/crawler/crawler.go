package crawler

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient performs single, non-retried page fetches with a fixed header set.
type HTTPClient struct {
	client  *http.Client
	sizeCap int64
	headers http.Header
}

func NewHTTPClient(timeout, dialTimeout time.Duration, sizeCap int64, headers map[string]string) *HTTPClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	h := make(http.Header, len(headers))
	for k, v := range headers {
		h.Set(k, v)
	}
	return &HTTPClient{
		// CheckRedirect is left nil so the default policy follows up to 10 hops.
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		sizeCap: sizeCap,
		headers: h,
	}
}

// Body is a response body cut off at the client's size cap.
type Body struct {
	lr *io.LimitedReader
	rc io.ReadCloser
}

func (b *Body) Read(p []byte) (int, error) { return b.lr.Read(p) }

func (b *Body) Close() error { return b.rc.Close() }

// Truncated reports whether the cap was hit with more of the page unread.
// Call it after the body has been consumed.
func (b *Body) Truncated() bool {
	if b.lr.N > 0 {
		return false
	}
	var one [1]byte
	n, _ := io.ReadFull(b.rc, one[:])
	return n > 0
}

// Fetch returns the (size-capped) response body, the final URL after
// redirects, the Content-Type header and the elapsed time.
func (h *HTTPClient) Fetch(ctx context.Context, rawURL string) (*Body, string, string, time.Duration, error) {
	start := time.Now()
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, "", "", 0, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, "", "", 0, fmt.Errorf("invalid url %q: expected an absolute http(s) URL", rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", "", 0, err
	}
	for k, v := range h.headers {
		req.Header[k] = append([]string(nil), v...)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, "", "", 0, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, "", "", 0, fmt.Errorf("http status %d for url %s", resp.StatusCode, resp.Request.URL)
	}

	body := &Body{lr: &io.LimitedReader{R: resp.Body, N: h.sizeCap}, rc: resp.Body}
	return body, resp.Request.URL.String(), resp.Header.Get("Content-Type"), time.Since(start), nil
}
