// Package federation combines results from the independently queried
// metadata and process backends into one typed, in-memory object model.
// The engine never inspects backend query syntax; it only consumes the
// documented tabular schemas and joins them by object identifier.
package federation

import (
	"context"
	"log/slog"

	"github.com/katyakrsn/heritage/core/rebuild"
	"github.com/katyakrsn/heritage/database"
	"github.com/katyakrsn/heritage/model"
)

// Engine owns the registered query service handlers and exposes the
// per-entity-kind retrieval operations. Operations producing people fan out
// over every registered metadata handler and deduplicate by identifier in
// first-seen order; object and activity operations are single-source and
// consult only the first registered handler of the respective side.
//
// Handler registration is not synchronized: registering handlers
// concurrently with retrieval is not safe. Retrieval operations themselves
// carry no state between calls and may run concurrently as long as the
// underlying query services support concurrent reads.
type Engine struct {
	metadata []database.MetadataQueryFunctions
	process  []database.ProcessQueryFunctions
	rebuild  *rebuild.Reconstructor
	log      *slog.Logger
}

// NewEngine creates a new federation engine with no registered handlers.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		rebuild: rebuild.NewReconstructor(logger),
		log:     logger,
	}
}

// AddMetadataHandler registers a metadata query handler. Handlers are
// consulted in registration order.
func (e *Engine) AddMetadataHandler(handler database.MetadataQueryFunctions) {
	e.metadata = append(e.metadata, handler)
}

// AddProcessHandler registers a process query handler.
func (e *Engine) AddProcessHandler(handler database.ProcessQueryFunctions) {
	e.process = append(e.process, handler)
}

// CleanMetadataHandlers removes all registered metadata handlers.
func (e *Engine) CleanMetadataHandlers() {
	e.metadata = nil
}

// CleanProcessHandlers removes all registered process handlers.
func (e *Engine) CleanProcessHandlers() {
	e.process = nil
}

// GetEntityByID returns the people linked to the entity whose identifier
// equals id exactly. All registered metadata handlers are consulted and the
// result is deduplicated by identifier across them.
func (e *Engine) GetEntityByID(ctx context.Context, id string) ([]*model.Person, error) {
	var people []*model.Person
	seen := map[string]bool{}

	for _, handler := range e.metadata {
		rows, err := handler.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		found, skipped := e.rebuild.People(rows, seen)
		people = append(people, found...)
		e.reportSkipped("GetEntityByID", skipped)
	}

	return people, nil
}

// GetAllPeople returns every known person. All registered metadata handlers
// are consulted and the result is deduplicated by identifier across them,
// preserving first-occurrence order.
func (e *Engine) GetAllPeople(ctx context.Context) ([]*model.Person, error) {
	var people []*model.Person
	seen := map[string]bool{}

	for _, handler := range e.metadata {
		rows, err := handler.GetAllPeople(ctx)
		if err != nil {
			return nil, err
		}

		found, skipped := e.rebuild.People(rows, seen)
		people = append(people, found...)
		e.reportSkipped("GetAllPeople", skipped)
	}

	return people, nil
}

// GetAllCulturalHeritageObjects returns every cultural heritage object.
// Single-source: only the first registered metadata handler is consulted.
func (e *Engine) GetAllCulturalHeritageObjects(ctx context.Context) ([]*model.CulturalHeritageObject, error) {
	handler, ok := e.firstMetadata()
	if !ok {
		return nil, nil
	}

	rows, err := handler.GetAllCulturalHeritageObjects(ctx)
	if err != nil {
		return nil, err
	}

	objects, skipped := e.rebuild.Objects(rows)
	e.reportSkipped("GetAllCulturalHeritageObjects", skipped)

	return objects, nil
}

// GetCulturalHeritageObjectsAuthoredBy returns the objects authored by the
// person with the given identifier. Single-source: only the first registered
// metadata handler is consulted.
func (e *Engine) GetCulturalHeritageObjectsAuthoredBy(ctx context.Context, authorID string) ([]*model.CulturalHeritageObject, error) {
	handler, ok := e.firstMetadata()
	if !ok {
		return nil, nil
	}

	rows, err := handler.GetCulturalHeritageObjectsAuthoredBy(ctx, authorID)
	if err != nil {
		return nil, err
	}

	objects, skipped := e.rebuild.Objects(rows)
	e.reportSkipped("GetCulturalHeritageObjectsAuthoredBy", skipped)

	return objects, nil
}

// GetAuthorsOfCulturalHeritageObject returns the authors of the object with
// the given identifier, deduplicated by identifier. Single-source: only the
// first registered metadata handler is consulted.
func (e *Engine) GetAuthorsOfCulturalHeritageObject(ctx context.Context, objectID string) ([]*model.Person, error) {
	handler, ok := e.firstMetadata()
	if !ok {
		return nil, nil
	}

	rows, err := handler.GetAuthorsOfCulturalHeritageObject(ctx, objectID)
	if err != nil {
		return nil, err
	}

	people, skipped := e.rebuild.People(rows, map[string]bool{})
	e.reportSkipped("GetAuthorsOfCulturalHeritageObject", skipped)

	return people, nil
}

// GetAllActivities returns every activity. Each activity references a
// placeholder object carrying only the identifier, because the process
// backend stores no object metadata.
func (e *Engine) GetAllActivities(ctx context.Context) ([]*model.Activity, error) {
	return e.activities(ctx, "GetAllActivities", func(ctx context.Context, h database.ProcessQueryFunctions) (model.ResultSet, error) {
		return h.GetAllActivities(ctx)
	})
}

// GetActivitiesByResponsibleInstitution returns activities whose responsible
// institute contains the given string, case-insensitively.
func (e *Engine) GetActivitiesByResponsibleInstitution(ctx context.Context, partial string) ([]*model.Activity, error) {
	return e.activities(ctx, "GetActivitiesByResponsibleInstitution", func(ctx context.Context, h database.ProcessQueryFunctions) (model.ResultSet, error) {
		return h.GetActivitiesByResponsibleInstitution(ctx, partial)
	})
}

// GetActivitiesByResponsiblePerson returns activities whose responsible
// person contains the given string, case-insensitively.
func (e *Engine) GetActivitiesByResponsiblePerson(ctx context.Context, partial string) ([]*model.Activity, error) {
	return e.activities(ctx, "GetActivitiesByResponsiblePerson", func(ctx context.Context, h database.ProcessQueryFunctions) (model.ResultSet, error) {
		return h.GetActivitiesByResponsiblePerson(ctx, partial)
	})
}

// GetActivitiesUsingTool returns activities whose tool list contains the
// given string, case-insensitively.
func (e *Engine) GetActivitiesUsingTool(ctx context.Context, partial string) ([]*model.Activity, error) {
	return e.activities(ctx, "GetActivitiesUsingTool", func(ctx context.Context, h database.ProcessQueryFunctions) (model.ResultSet, error) {
		return h.GetActivitiesUsingTool(ctx, partial)
	})
}

// GetActivitiesStartedAfter returns activities started on or after the given
// date. Dates compare lexically, which matches chronology only for sortable
// textual dates (ISO-8601); that is a contract the upstream data must
// satisfy.
func (e *Engine) GetActivitiesStartedAfter(ctx context.Context, date string) ([]*model.Activity, error) {
	return e.activities(ctx, "GetActivitiesStartedAfter", func(ctx context.Context, h database.ProcessQueryFunctions) (model.ResultSet, error) {
		return h.GetActivitiesStartedAfter(ctx, date)
	})
}

// GetActivitiesEndedBefore returns activities ended on or before the given
// date (inclusive, lexical comparison).
func (e *Engine) GetActivitiesEndedBefore(ctx context.Context, date string) ([]*model.Activity, error) {
	return e.activities(ctx, "GetActivitiesEndedBefore", func(ctx context.Context, h database.ProcessQueryFunctions) (model.ResultSet, error) {
		return h.GetActivitiesEndedBefore(ctx, date)
	})
}

// GetAcquisitionsByTechnique returns acquisition activities whose technique
// contains the given string, case-insensitively.
func (e *Engine) GetAcquisitionsByTechnique(ctx context.Context, partial string) ([]*model.Activity, error) {
	return e.activities(ctx, "GetAcquisitionsByTechnique", func(ctx context.Context, h database.ProcessQueryFunctions) (model.ResultSet, error) {
		return h.GetAcquisitionsByTechnique(ctx, partial)
	})
}

// activities runs one pre-filtered process query against the first
// registered process handler and reconstructs the rows. Single-source: no
// registered handler means an empty result, not a failure.
func (e *Engine) activities(ctx context.Context, op string, fetch func(context.Context, database.ProcessQueryFunctions) (model.ResultSet, error)) ([]*model.Activity, error) {
	handler, ok := e.firstProcess()
	if !ok {
		return nil, nil
	}

	rows, err := fetch(ctx, handler)
	if err != nil {
		return nil, err
	}

	activities, skipped := e.rebuild.Activities(rows)
	e.reportSkipped(op, skipped)

	return activities, nil
}

func (e *Engine) firstMetadata() (database.MetadataQueryFunctions, bool) {
	if len(e.metadata) == 0 {
		return nil, false
	}
	return e.metadata[0], true
}

func (e *Engine) firstProcess() (database.ProcessQueryFunctions, bool) {
	if len(e.process) == 0 {
		return nil, false
	}
	return e.process[0], true
}

// reportSkipped surfaces data-quality skips (unknown type tags, rows without
// identifiers) without failing the operation.
func (e *Engine) reportSkipped(op string, skipped int) {
	if skipped > 0 {
		e.log.Warn("Skipped rows during reconstruction", slog.String("operation", op), slog.Int("skipped", skipped))
	}
}
