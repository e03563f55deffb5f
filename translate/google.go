package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultGoogleEndpoint is the public Google Translate web endpoint.
const DefaultGoogleEndpoint = "https://translate.googleapis.com"

// GoogleOptions configures the Google translation capability.
type GoogleOptions struct {
	// Endpoint overrides the API base URL (tests point this at a local server).
	Endpoint string
	// Proxy is an optional HTTP/HTTPS proxy URL.
	Proxy string
	// Timeout is the per-request timeout. Default: 30 seconds.
	Timeout time.Duration
}

// GoogleTranslator translates text for one fixed language pair via the
// unauthenticated Google Translate endpoint. Each Translate call is a
// single attempt; retry ownership stays with the engine.
type GoogleTranslator struct {
	source   string
	target   string
	endpoint string
	client   *http.Client
}

// NewGoogleTranslator builds a translator for the given language pair.
func NewGoogleTranslator(source, target string, opts GoogleOptions) *GoogleTranslator {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultGoogleEndpoint
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GoogleTranslator{
		source:   source,
		target:   target,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   makeHTTPClient(opts.Proxy, timeout),
	}
}

// makeHTTPClient builds an HTTP client with proxy support. An explicit
// proxy URL wins; otherwise HTTP_PROXY/HTTPS_PROXY env vars apply.
func makeHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// Translate sends one text to the translation endpoint and returns the
// translated text.
func (g *GoogleTranslator) Translate(ctx context.Context, text string) (string, error) {
	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", g.source)
	query.Set("tl", g.target)
	query.Set("dt", "t")
	query.Set("q", text)
	endpoint := g.endpoint + "/translate_a/single?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("rate limited (429): %s", truncate(string(body), 200))
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation service returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	return extractTranslation(body)
}

// extractTranslation pulls the translated text out of the endpoint's
// response, which is a nested JSON array:
//
//	[[["<translated>", "<original>", ...], ...], null, "<detected-lang>", ...]
//
// The first element lists segments; their first fields concatenated form
// the full translation.
func extractTranslation(body []byte) (string, error) {
	var raw []any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("invalid JSON response: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	segments, ok := raw[0].([]any)
	if !ok {
		return "", fmt.Errorf("unexpected response shape: %s", truncate(string(body), 200))
	}

	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if text, ok := parts[0].(string); ok {
			b.WriteString(text)
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no translation in response: %s", truncate(string(body), 200))
	}
	return b.String(), nil
}

// truncate shortens s for error messages.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
