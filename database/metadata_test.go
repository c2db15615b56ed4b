package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sparqlServer serves a fixed SPARQL JSON document and records the last
// query it received.
func sparqlServer(t *testing.T, body string, lastQuery *string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if lastQuery != nil {
			*lastQuery = r.FormValue("query")
		}
		assert.Equal(t, "application/sparql-results+json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/sparql-results+json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewMetadataQueryHandler(t *testing.T) {
	t.Run("Valid call NewMetadataQueryHandler", func(t *testing.T) {
		handler, err := NewMetadataQueryHandler("http://localhost:9999/sparql", discardLogger())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9999/sparql", handler.Endpoint())
	})

	t.Run("Invalid call NewMetadataQueryHandler with empty endpoint", func(t *testing.T) {
		_, err := NewMetadataQueryHandler("", discardLogger())
		assert.Error(t, err, "Expected error when creating MetadataQueryHandler without an endpoint")
	})
}

func TestMetadataBindingMapping(t *testing.T) {
	// Second solution leaves the optional author variables unbound.
	body := `{
		"head": {"vars": ["type_name", "id", "title", "author_id", "author_name"]},
		"results": {"bindings": [
			{
				"type_name": {"type": "literal", "value": "Painting"},
				"id": {"type": "literal", "value": "1"},
				"title": {"type": "literal", "value": "Ritratto di Galileo"},
				"author_id": {"type": "literal", "value": "VIAF:12345"},
				"author_name": {"type": "literal", "value": "Sustermans, Justus"}
			},
			{
				"type_name": {"type": "literal", "value": "Map"},
				"id": {"type": "literal", "value": "2"},
				"title": {"type": "literal", "value": "Carta nautica"}
			}
		]}
	}`

	server := sparqlServer(t, body, nil)
	handler, err := NewMetadataQueryHandler(server.URL, discardLogger())
	require.NoError(t, err)

	results, err := handler.GetAllCulturalHeritageObjects(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Painting", results[0].Str("type_name"))
	assert.Equal(t, "Sustermans, Justus", results[0].Str("author_name"))
	assert.Equal(t, "Carta nautica", results[1].Str("title"))
	assert.False(t, results[1].Has("author_id"), "Expected unbound variables to be absent from the row")
	assert.False(t, results[1].Has("author_name"))
}

func TestMetadataQueryShape(t *testing.T) {
	empty := `{"head": {"vars": []}, "results": {"bindings": []}}`

	t.Run("GetByID embeds the identifier as a literal", func(t *testing.T) {
		var query string
		server := sparqlServer(t, empty, &query)
		handler, err := NewMetadataQueryHandler(server.URL, discardLogger())
		require.NoError(t, err)

		results, err := handler.GetByID(context.Background(), "42")
		require.NoError(t, err)
		assert.Empty(t, results, "Expected no results from an empty store")
		assert.Contains(t, query, `schema:identifier "42"`)
	})

	t.Run("Identifier quotes are escaped", func(t *testing.T) {
		var query string
		server := sparqlServer(t, empty, &query)
		handler, err := NewMetadataQueryHandler(server.URL, discardLogger())
		require.NoError(t, err)

		_, err = handler.GetAuthorsOfCulturalHeritageObject(context.Background(), `a"b`)
		require.NoError(t, err)
		assert.Contains(t, query, `"a\"b"`)
	})

	t.Run("Object queries restrict the type", func(t *testing.T) {
		var query string
		server := sparqlServer(t, empty, &query)
		handler, err := NewMetadataQueryHandler(server.URL, discardLogger())
		require.NoError(t, err)

		_, err = handler.GetCulturalHeritageObjectsAuthoredBy(context.Background(), "VIAF:1")
		require.NoError(t, err)
		assert.Contains(t, query, "https://schema.org/NauticalChart")
		assert.Contains(t, query, "https://schema.org/Map")
	})
}

func TestMetadataUnavailable(t *testing.T) {
	t.Run("Non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "MALFORMED QUERY", http.StatusBadRequest)
		}))
		t.Cleanup(server.Close)

		handler, err := NewMetadataQueryHandler(server.URL, discardLogger())
		require.NoError(t, err)

		_, err = handler.GetAllPeople(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnavailable))
		assert.True(t, strings.Contains(err.Error(), "400"), "Expected the status code in the error")
	})

	t.Run("Unreachable endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		handler, err := NewMetadataQueryHandler(server.URL, discardLogger())
		require.NoError(t, err)

		_, err = handler.GetAllPeople(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("Malformed response body", func(t *testing.T) {
		server := sparqlServer(t, "<html>not json</html>", nil)
		handler, err := NewMetadataQueryHandler(server.URL, discardLogger())
		require.NoError(t, err)

		_, err = handler.GetAllPeople(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnavailable))
	})
}
