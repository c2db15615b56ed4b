package helper

import (
	"fmt"
	"os"
)

// Configuration holds everything needed to wire the reference query handlers:
// the SPARQL endpoint answering metadata queries and the relational store
// holding the process data.
type Configuration struct {
	SparqlEndpoint string
	Database       *DatabaseConfiguration
}

// NewConfiguration creates a configuration from the HERITAGE_* environment
// variables.
func NewConfiguration() (*Configuration, error) {
	endpoint := os.Getenv("HERITAGE_SPARQL_ENDPOINT")
	if endpoint == "" {
		return nil, NewError("configuration validation", fmt.Errorf("HERITAGE_SPARQL_ENDPOINT is not set"))
	}

	dbConfig, err := NewDatabaseConfiguration()
	if err != nil {
		return nil, err
	}

	return &Configuration{
		SparqlEndpoint: endpoint,
		Database:       dbConfig,
	}, nil
}
