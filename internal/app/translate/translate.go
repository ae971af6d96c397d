/*
Package translate provides the translation adapter used for per-recipient message translation.

It defines the Translator interface consumed by the chat relay, the Result value
returned on success, and the typed errors every failure mode is converted into.
The adapter is stateless; each call is an independent network request with a
bounded timeout.
*/
package translate

import (
	"context"
	"errors"
)

// ErrUnsupportedLanguage indicates that the requested target language code is
// not a recognized language.
var ErrUnsupportedLanguage = errors.New("translate: unsupported target language")

// ErrServiceUnavailable indicates that the translation service could not be
// reached or returned an unusable response.
var ErrServiceUnavailable = errors.New("translate: service unavailable")

// Result holds the outcome of a successful translation call.
type Result struct {
	// TranslatedText is the message text rendered in the target language.
	TranslatedText string

	// DetectedSourceLanguage is the source language the service detected
	// (or confirmed, when a source language was supplied).
	DetectedSourceLanguage string
}

// Translator translates text between languages.
// Implementations must never panic on service failure; every error condition is
// returned as an error value. The context bounds the call's latency.
type Translator interface {
	// Translate renders text into targetLang. sourceLang may be empty or an
	// unrecognized code, in which case the source language is auto-detected.
	Translate(ctx context.Context, text, targetLang, sourceLang string) (Result, error)
}
