package fetcher

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// FetchError describes a failed page fetch. It is the only error type the
// fetcher returns, so the orchestrator can render it as one error string.
type FetchError struct {
	URL    string
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher performs single bounded HTTP GETs. It never retries and never
// caches; every call is one request.
type Fetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
	Metrics   *Metrics
}

// New builds a fetcher with a tuned transport and a hard body-size cap.
func New(maxBytes int64, userAgent string) *Fetcher {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Fetcher{
		client:    &http.Client{Transport: transport},
		maxBytes:  maxBytes,
		userAgent: userAgent,
		Metrics:   NewMetrics(),
	}
}

// Fetch performs one GET with the given timeout and returns the page body
// decoded to UTF-8. The body is truncated at the byte cap rather than
// rejected; partial HTML is acceptable parser input. phase labels the
// metrics ("homepage" or "subpage").
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, timeout time.Duration, phase string) (string, string, error) {
	start := time.Now()
	f.Metrics.IncRequest(phase)

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		f.Metrics.IncError("invalid_url")
		return "", "", &FetchError{URL: rawURL, Reason: "invalid url"}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		f.Metrics.IncError("request")
		return "", "", &FetchError{URL: rawURL, Reason: "build request", Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := f.client.Do(req)
	if err != nil {
		reason := "request failed"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		f.Metrics.IncError(errorLabel(err))
		return "", "", &FetchError{URL: rawURL, Reason: reason, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		f.Metrics.IncError("http_status")
		return "", "", &FetchError{URL: rawURL, Reason: fmt.Sprintf("http status %d", resp.StatusCode)}
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if !isHTML(mediaType) {
		f.Metrics.IncError("content_type")
		return "", "", &FetchError{URL: rawURL, Reason: fmt.Sprintf("non-html content type %q", mediaType)}
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, gzErr := gzip.NewReader(resp.Body)
		if gzErr != nil {
			f.Metrics.IncError("gzip")
			return "", "", &FetchError{URL: rawURL, Reason: "gzip decode", Err: gzErr}
		}
		defer gz.Close()
		body = gz
	}

	// Stop accepting bytes at the cap; a body truncated there is a successful
	// fetch and never surfaces as an error. A read failure before the cap is
	// a transport fault and does.
	data, readErr := io.ReadAll(io.LimitReader(body, f.maxBytes))
	if readErr != nil {
		reason := "read body"
		if errors.Is(readErr, context.DeadlineExceeded) {
			reason = "timeout"
		}
		f.Metrics.IncError(errorLabel(readErr))
		return "", "", &FetchError{URL: rawURL, Reason: reason, Err: readErr}
	}

	finalURL := resp.Request.URL.String()
	f.Metrics.ObserveDuration(time.Since(start))
	slog.Debug("page fetched",
		slog.String("url", finalURL),
		slog.String("phase", phase),
		slog.Int("bytes", len(data)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return decodeToUTF8(data, contentType), finalURL, nil
}

// isHTML accepts text/html and xhtml. An empty media type passes through:
// some servers omit Content-Type on HTML responses.
func isHTML(mediaType string) bool {
	if mediaType == "" {
		return true
	}
	return strings.Contains(mediaType, "text/html") || strings.Contains(mediaType, "application/xhtml+xml")
}

// decodeToUTF8 decodes the body using the detected charset. Decoding never
// fails the fetch: on decoder error, invalid sequences are replaced instead.
func decodeToUTF8(data []byte, contentType string) string {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// fallback: if already utf-8, continue
		if utf8.Valid(data) {
			return string(data)
		}
		return strings.ToValidUTF8(string(data), "�")
	}
	return string(decoded)
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "timeout"
		}
		return "transport"
	}
}
