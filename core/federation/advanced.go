package federation

import (
	"context"
	"log/slog"

	"github.com/katyakrsn/heritage/database"
	"github.com/katyakrsn/heritage/model"
)

// AdvancedEngine extends the basic engine with cross-service joins. The
// joins are read-only and computed entirely in memory after fetching full
// result sets from both sides; the join key is always the string-normalized
// object identifier, which neither backend can resolve against the other on
// its own.
type AdvancedEngine struct {
	*Engine
}

// NewAdvancedEngine creates a new advanced federation engine with no
// registered handlers.
func NewAdvancedEngine(logger *slog.Logger) *AdvancedEngine {
	return &AdvancedEngine{Engine: NewEngine(logger)}
}

// GetActivitiesOnObjectsAuthoredBy returns every activity carried out on an
// object authored by the person with the given identifier. An author
// matching zero objects yields an empty result, not a failure.
func (e *AdvancedEngine) GetActivitiesOnObjectsAuthoredBy(ctx context.Context, authorID string) ([]*model.Activity, error) {
	metadata, ok := e.firstMetadata()
	if !ok {
		return nil, nil
	}
	process, ok := e.firstProcess()
	if !ok {
		return nil, nil
	}

	objectRows, err := metadata.GetCulturalHeritageObjectsAuthoredBy(ctx, authorID)
	if err != nil {
		return nil, err
	}

	authored := map[string]bool{}
	for _, row := range objectRows {
		if id := row.Str("id"); id != "" {
			authored[id] = true
		}
	}
	if len(authored) == 0 {
		return nil, nil
	}

	activityRows, err := process.GetAllActivities(ctx)
	if err != nil {
		return nil, err
	}

	var activities []*model.Activity
	skipped := 0
	for _, row := range activityRows {
		if !authored[row.Str("object_id")] {
			continue
		}
		activity, ok := e.rebuild.Activity(row, row.Str("type"))
		if !ok {
			skipped++
			continue
		}
		activities = append(activities, activity)
	}
	e.reportSkipped("GetActivitiesOnObjectsAuthoredBy", skipped)

	return activities, nil
}

// GetObjectsHandledByResponsiblePerson returns the objects whose activities
// name a responsible person containing the given string.
func (e *AdvancedEngine) GetObjectsHandledByResponsiblePerson(ctx context.Context, partial string) ([]*model.CulturalHeritageObject, error) {
	return e.objectsHandledBy(ctx, "GetObjectsHandledByResponsiblePerson", func(ctx context.Context, h database.ProcessQueryFunctions) (model.ResultSet, error) {
		return h.GetActivitiesByResponsiblePerson(ctx, partial)
	})
}

// GetObjectsHandledByResponsibleInstitution returns the objects whose
// activities name a responsible institute containing the given string.
func (e *AdvancedEngine) GetObjectsHandledByResponsibleInstitution(ctx context.Context, partial string) ([]*model.CulturalHeritageObject, error) {
	return e.objectsHandledBy(ctx, "GetObjectsHandledByResponsibleInstitution", func(ctx context.Context, h database.ProcessQueryFunctions) (model.ResultSet, error) {
		return h.GetActivitiesByResponsibleInstitution(ctx, partial)
	})
}

// objectsHandledBy resolves the matching activities on the process side,
// then locates each referenced object in the metadata result set and
// reconstructs its concrete variant. Objects are deduplicated by identifier
// in first-seen order. An activity referencing an identifier the metadata
// side does not know is a cross-source integrity gap: the activity is
// skipped and logged, never crashed on.
func (e *AdvancedEngine) objectsHandledBy(ctx context.Context, op string, fetch func(context.Context, database.ProcessQueryFunctions) (model.ResultSet, error)) ([]*model.CulturalHeritageObject, error) {
	metadata, ok := e.firstMetadata()
	if !ok {
		return nil, nil
	}
	process, ok := e.firstProcess()
	if !ok {
		return nil, nil
	}

	activityRows, err := fetch(ctx, process)
	if err != nil {
		return nil, err
	}
	if len(activityRows) == 0 {
		return nil, nil
	}

	objectRows, err := metadata.GetAllCulturalHeritageObjects(ctx)
	if err != nil {
		return nil, err
	}

	// Index the metadata rows by identifier; the first row per object wins.
	byID := make(map[string]model.Row, len(objectRows))
	for _, row := range objectRows {
		id := row.Str("id")
		if id == "" {
			continue
		}
		if _, exists := byID[id]; !exists {
			byID[id] = row
		}
	}

	var objects []*model.CulturalHeritageObject
	seen := map[string]bool{}
	gaps := 0
	skipped := 0

	for _, activityRow := range activityRows {
		objectID := activityRow.Str("object_id")
		if objectID == "" || seen[objectID] {
			continue
		}
		seen[objectID] = true

		objectRow, found := byID[objectID]
		if !found {
			gaps++
			continue
		}

		object, ok := e.rebuild.Object(objectRow, objectRow.Str("type_name"))
		if !ok {
			skipped++
			continue
		}
		objects = append(objects, object)
	}

	if gaps > 0 {
		e.log.Warn("Activities referenced objects missing from the metadata store",
			slog.String("operation", op), slog.Int("missing", gaps))
	}
	e.reportSkipped(op, skipped)

	return objects, nil
}

// GetAuthorsOfObjectsAcquiredInTimeFrame returns the authorship credits of
// every object that was acquired on or after start and exported on or before
// end. Authors accumulate per qualifying object without cross-object
// deduplication: a person credited on two qualifying objects appears twice.
func (e *AdvancedEngine) GetAuthorsOfObjectsAcquiredInTimeFrame(ctx context.Context, start, end string) ([]*model.Person, error) {
	process, ok := e.firstProcess()
	if !ok {
		return nil, nil
	}

	startedRows, err := process.GetActivitiesStartedAfter(ctx, start)
	if err != nil {
		return nil, err
	}

	// Acquisition-side identifiers, in first-seen order so repeated calls
	// return identical results.
	var acquiredOrder []string
	acquired := map[string]bool{}
	for _, row := range startedRows {
		if row.Str("type") != string(model.KindAcquisition) {
			continue
		}
		id := row.Str("object_id")
		if id == "" || acquired[id] {
			continue
		}
		acquired[id] = true
		acquiredOrder = append(acquiredOrder, id)
	}
	if len(acquiredOrder) == 0 {
		return nil, nil
	}

	endedRows, err := process.GetActivitiesEndedBefore(ctx, end)
	if err != nil {
		return nil, err
	}

	exported := map[string]bool{}
	for _, row := range endedRows {
		if row.Str("type") == string(model.KindExporting) {
			exported[row.Str("object_id")] = true
		}
	}

	var authors []*model.Person
	for _, id := range acquiredOrder {
		if !exported[id] {
			continue
		}

		credited, err := e.GetAuthorsOfCulturalHeritageObject(ctx, id)
		if err != nil {
			return nil, err
		}
		authors = append(authors, credited...)
	}

	return authors, nil
}
