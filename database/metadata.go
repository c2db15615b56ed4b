package database

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/katyakrsn/heritage/helper"
	"github.com/katyakrsn/heritage/model"
)

// MetadataQueryFunctions defines the interface for metadata (graph store)
// query operations. Every operation returns a tabular result set; an empty
// result set is a valid answer, never an error.
type MetadataQueryFunctions interface {
	GetByID(ctx context.Context, id string) (model.ResultSet, error)
	GetAllPeople(ctx context.Context) (model.ResultSet, error)
	GetAllCulturalHeritageObjects(ctx context.Context) (model.ResultSet, error)
	GetAuthorsOfCulturalHeritageObject(ctx context.Context, id string) (model.ResultSet, error)
	GetCulturalHeritageObjectsAuthoredBy(ctx context.Context, authorID string) (model.ResultSet, error)
}

// MetadataQueryHandler answers metadata queries against a SPARQL 1.1
// endpoint (e.g. a Blazegraph instance) and maps the JSON results format
// onto model.ResultSet.
type MetadataQueryHandler struct {
	endpoint string
	client   *http.Client
	log      *slog.Logger
}

// NewMetadataQueryHandler creates a new metadata query handler for the given
// SPARQL endpoint.
func NewMetadataQueryHandler(endpoint string, logger *slog.Logger) (*MetadataQueryHandler, error) {
	if endpoint == "" {
		return nil, helper.NewError("metadata endpoint validation", fmt.Errorf("endpoint is empty"))
	}

	logger.Info("Initialized MetadataQueryHandler", slog.String("endpoint", endpoint))

	return &MetadataQueryHandler{
		endpoint: endpoint,
		client:   &http.Client{},
		log:      logger,
	}, nil
}

// Endpoint returns the SPARQL endpoint URL the handler talks to.
func (h *MetadataQueryHandler) Endpoint() string {
	return h.endpoint
}

const sparqlPrefixes = `PREFIX rdf:  <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX schema: <https://schema.org/>
`

// objectTypeFilter restricts a query to the ten cultural heritage object
// classes.
const objectTypeFilter = `FILTER(?type IN (
    <https://schema.org/NauticalChart>,
    <https://schema.org/ManuscriptPlate>,
    <https://schema.org/ManuscriptVolume>,
    <https://schema.org/PrintedVolume>,
    <https://schema.org/PrintedMaterial>,
    <https://schema.org/Herbarium>,
    <https://schema.org/Specimen>,
    <https://schema.org/Painting>,
    <https://schema.org/Model>,
    <https://schema.org/Map>
))`

// GetByID returns the authors and title linked to the entity carrying the
// given identifier. Columns: identifier, name, title.
func (h *MetadataQueryHandler) GetByID(ctx context.Context, id string) (model.ResultSet, error) {
	query := sparqlPrefixes + fmt.Sprintf(`
SELECT ?identifier ?name ?title
WHERE {
    ?entity schema:identifier %s .
    ?entity schema:creator ?author .
    ?author rdfs:label ?name .
    ?author schema:identifier ?identifier .
    ?entity schema:name ?title .
}`, sparqlLiteral(id))

	return h.query(ctx, query)
}

// GetAllPeople returns every person referenced as an author.
// Columns: id, name.
func (h *MetadataQueryHandler) GetAllPeople(ctx context.Context) (model.ResultSet, error) {
	query := sparqlPrefixes + `
SELECT ?id ?name
WHERE {
    ?entity schema:creator ?author .
    ?author rdfs:label ?name .
    ?author schema:identifier ?id .
}`

	return h.query(ctx, query)
}

// GetAllCulturalHeritageObjects returns every cultural heritage object with
// its declared type tag. Columns: type_name, id, title, date, owner, place,
// author_id?, author_name?.
func (h *MetadataQueryHandler) GetAllCulturalHeritageObjects(ctx context.Context) (model.ResultSet, error) {
	query := sparqlPrefixes + `
SELECT (REPLACE(STR(?type), "https://schema.org/", "") AS ?type_name) ?id ?title ?date ?owner ?place ?author_id ?author_name
WHERE {
    ?object rdf:type ?type .
    ?object schema:name ?title .
    ?object schema:identifier ?id .
    OPTIONAL { ?object schema:dateCreated ?date }
    OPTIONAL { ?object schema:provider ?owner }
    OPTIONAL { ?object schema:contentLocation ?place }
    OPTIONAL {
        ?object schema:creator ?author .
        ?author schema:identifier ?author_id .
        ?author rdfs:label ?author_name .
    }
    ` + objectTypeFilter + `
}`

	return h.query(ctx, query)
}

// GetAuthorsOfCulturalHeritageObject returns the authors of the object with
// the given identifier. Columns: id, name.
func (h *MetadataQueryHandler) GetAuthorsOfCulturalHeritageObject(ctx context.Context, id string) (model.ResultSet, error) {
	query := sparqlPrefixes + fmt.Sprintf(`
SELECT ?id ?name
WHERE {
    ?entity schema:identifier %s .
    ?entity schema:creator ?author .
    ?author rdfs:label ?name .
    ?author schema:identifier ?id .
}`, sparqlLiteral(id))

	return h.query(ctx, query)
}

// GetCulturalHeritageObjectsAuthoredBy returns every object whose creator
// carries the given identifier. Same columns as
// GetAllCulturalHeritageObjects.
func (h *MetadataQueryHandler) GetCulturalHeritageObjectsAuthoredBy(ctx context.Context, authorID string) (model.ResultSet, error) {
	query := sparqlPrefixes + fmt.Sprintf(`
SELECT (REPLACE(STR(?type), "https://schema.org/", "") AS ?type_name) ?id ?title ?date ?owner ?place ?author_id ?author_name
WHERE {
    ?creator schema:identifier %s .
    ?object schema:creator ?creator .
    ?object rdf:type ?type .
    ?object schema:name ?title .
    ?object schema:identifier ?id .
    OPTIONAL { ?object schema:dateCreated ?date }
    OPTIONAL { ?object schema:provider ?owner }
    OPTIONAL { ?object schema:contentLocation ?place }
    OPTIONAL {
        ?object schema:creator ?author .
        ?author schema:identifier ?author_id .
        ?author rdfs:label ?author_name .
    }
    `+objectTypeFilter+`
}`, sparqlLiteral(authorID))

	return h.query(ctx, query)
}

// sparqlResponse is the SPARQL 1.1 JSON results format.
type sparqlResponse struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]sparqlTerm `json:"bindings"`
	} `json:"results"`
}

type sparqlTerm struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// query posts the SPARQL query to the endpoint and converts the JSON
// results into a result set. Variables left unbound in a solution are absent
// from the corresponding row.
func (h *MetadataQueryHandler) query(ctx context.Context, query string) (model.ResultSet, error) {
	form := url.Values{}
	form.Set("query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, helper.NewError("build sparql request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, helper.NewError("query sparql endpoint", fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, helper.NewError(
			"query sparql endpoint",
			fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body))),
		)
	}

	var parsed sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, helper.NewError("decode sparql response", fmt.Errorf("%w: %v", ErrUnavailable, err))
	}

	rows := make(model.ResultSet, 0, len(parsed.Results.Bindings))
	for _, binding := range parsed.Results.Bindings {
		row := model.Row{}
		for _, name := range parsed.Head.Vars {
			if term, ok := binding[name]; ok {
				row[name] = term.Value
			}
		}
		rows = append(rows, row)
	}

	h.log.Debug("SPARQL query answered", slog.Int("rows", len(rows)))

	return rows, nil
}

// sparqlLiteral renders a string as a quoted SPARQL literal.
func sparqlLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
