package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTranslator(t *testing.T, handler http.HandlerFunc) (*GoogleTranslator, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewGoogleTranslator(server.URL, 2*time.Second), server
}

func TestTranslateSuccess(t *testing.T) {
	var gotQuery url.Values

	translator, _ := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[[["Hola","hello",null,null,1]],null,"en"]`))
	})

	result, err := translator.Translate(context.Background(), "hello", "es", "en")
	require.NoError(t, err)

	assert.Equal(t, "Hola", result.TranslatedText)
	assert.Equal(t, "en", result.DetectedSourceLanguage)

	assert.Equal(t, "gtx", gotQuery.Get("client"))
	assert.Equal(t, "hello", gotQuery.Get("q"))
	assert.Equal(t, "es", gotQuery.Get("tl"))
	assert.Equal(t, "en", gotQuery.Get("sl"))
}

func TestTranslateConcatenatesSegments(t *testing.T) {
	translator, _ := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[["Hola. ","Hello. ",null,null,1],["¿Cómo estás?","How are you?",null,null,1]],null,"en"]`))
	})

	result, err := translator.Translate(context.Background(), "Hello. How are you?", "es", "en")
	require.NoError(t, err)

	assert.Equal(t, "Hola. ¿Cómo estás?", result.TranslatedText)
}

func TestTranslateRejectsUnsupportedTargetLanguage(t *testing.T) {
	requests := 0
	translator, _ := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	_, err := translator.Translate(context.Background(), "hello", "xx", "en")

	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.Equal(t, 0, requests, "no network call for an invalid target language")
}

func TestTranslateAutoDetectsInvalidSourceLanguage(t *testing.T) {
	var gotQuery url.Values

	translator, _ := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[[["Hola","hello",null,null,1]],null,"en"]`))
	})

	_, err := translator.Translate(context.Background(), "hello", "es", "")
	require.NoError(t, err)
	assert.Equal(t, "auto", gotQuery.Get("sl"))

	_, err = translator.Translate(context.Background(), "hello", "es", "not-a-lang")
	require.NoError(t, err)
	assert.Equal(t, "auto", gotQuery.Get("sl"))
}

func TestTranslateMapsServerErrors(t *testing.T) {
	translator, _ := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := translator.Translate(context.Background(), "hello", "es", "en")

	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestTranslateMapsMalformedResponses(t *testing.T) {
	cases := map[string]string{
		"not json":        `it broke`,
		"empty array":     `[]`,
		"wrong shape":     `["nope"]`,
		"object response": `{"error":"quota"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			translator, _ := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			_, err := translator.Translate(context.Background(), "hello", "es", "en")
			assert.ErrorIs(t, err, ErrServiceUnavailable)
		})
	}
}

func TestTranslateHonorsContextTimeout(t *testing.T) {
	translator, _ := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`[[["Hola","hello",null,null,1]],null,"en"]`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := translator.Translate(ctx, "hello", "es", "en")

	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("es"))
	assert.True(t, IsSupported("en"))
	assert.True(t, IsSupported("zh-cn"))
	assert.False(t, IsSupported(""))
	assert.False(t, IsSupported("ES"))
	assert.False(t, IsSupported("klingon"))
}
