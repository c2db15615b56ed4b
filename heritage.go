// Package heritage federates a graph store holding cultural heritage object
// metadata and a relational store holding digitisation process records into
// one typed, in-memory object model.
package heritage

import (
	"log/slog"
	"os"

	"github.com/katyakrsn/heritage/core/federation"
	"github.com/katyakrsn/heritage/database"
	"github.com/katyakrsn/heritage/helper"
)

// Heritage provides a unified interface to the query handlers and the
// federation engine built on top of them.
type Heritage struct {
	DB       *helper.Database
	Metadata *database.MetadataQueryHandler
	Process  *database.ProcessQueryHandler
	Engine   *federation.AdvancedEngine
	// Logging
	log *slog.Logger
}

// New creates a new Heritage instance with both reference query handlers
// wired into an advanced federation engine.
func New(config *helper.Configuration) (*Heritage, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Metadata side: SPARQL endpoint
	metadata, err := database.NewMetadataQueryHandler(config.SparqlEndpoint, logger)
	if err != nil {
		return nil, helper.NewError("create metadata query handler", err)
	}

	// Process side: relational store
	db := helper.NewDatabase("heritage", config.Database, logger)
	process, err := database.NewProcessQueryHandler(db)
	if err != nil {
		return nil, helper.NewError("create process query handler", err)
	}

	engine := federation.NewAdvancedEngine(logger)
	engine.AddMetadataHandler(metadata)
	engine.AddProcessHandler(process)

	return &Heritage{
		DB:       db,
		Metadata: metadata,
		Process:  process,
		Engine:   engine,
		log:      logger,
	}, nil
}

// Close closes the process store connection.
func (h *Heritage) Close() error {
	if h.DB != nil && h.DB.Instance != nil {
		return h.DB.Instance.Close()
	}
	return nil
}
