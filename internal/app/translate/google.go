/*
Package translate provides the translation adapter used for per-recipient message translation.

This file implements the Translator interface against the public Google Translate
web endpoint (the same service the frontend's translation feature relies on).
The endpoint is intermittently reliable, so every call carries a hard timeout and
every failure is mapped onto a typed error.
*/
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

const translatePath = "/translate_a/single"

// maxResponseBytes caps how much of the service response is read; translated
// chat messages are small and anything beyond this is a misbehaving upstream.
const maxResponseBytes = 1 << 20

// GoogleTranslator calls the unauthenticated Google Translate web endpoint.
type GoogleTranslator struct {
	endpoint string
	client   *http.Client
}

// NewGoogleTranslator creates a translator against the given base endpoint
// (e.g. "https://translate.googleapis.com"). The timeout bounds each call even
// when the caller's context carries no deadline.
func NewGoogleTranslator(endpoint string, timeout time.Duration) *GoogleTranslator {
	return &GoogleTranslator{
		endpoint: strings.TrimRight(endpoint, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Translate renders text into targetLang. An unrecognized targetLang returns
// ErrUnsupportedLanguage. An empty or unrecognized sourceLang requests
// auto-detection from the service.
func (g *GoogleTranslator) Translate(ctx context.Context, text, targetLang, sourceLang string) (Result, error) {
	if !IsSupported(targetLang) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, targetLang)
	}

	source := "auto"
	if IsSupported(sourceLang) {
		source = sourceLang
	}

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("dt", "t")
	params.Set("sl", source)
	params.Set("tl", targetLang)
	params.Set("q", text)

	reqURL := g.endpoint + translatePath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: unexpected status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	return parseResponse(body)
}

// parseResponse decodes the service's positional JSON array response:
// element 0 is a list of translated segments ([translated, original, ...]),
// element 2 is the detected source language.
func parseResponse(body []byte) (Result, error) {
	var raw []any
	if err := json.Unmarshal(body, &raw); err != nil {
		return Result{}, fmt.Errorf("%w: malformed response: %v", ErrServiceUnavailable, err)
	}

	if len(raw) < 1 {
		return Result{}, fmt.Errorf("%w: empty response", ErrServiceUnavailable)
	}

	segments, ok := raw[0].([]any)
	if !ok {
		return Result{}, fmt.Errorf("%w: unexpected response shape", ErrServiceUnavailable)
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if text, ok := parts[0].(string); ok {
			sb.WriteString(text)
		}
	}

	result := Result{TranslatedText: sb.String()}

	if len(raw) > 2 {
		if detected, ok := raw[2].(string); ok {
			result.DetectedSourceLanguage = detected
		}
	}

	return result, nil
}
