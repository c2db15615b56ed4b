// Package rebuild reconstructs typed domain entities from the untyped
// tabular rows the query services return. A declared type tag on each row
// selects the concrete variant through a lookup table; rows with unknown
// tags are skipped and counted, never turned into errors.
package rebuild

import (
	"log/slog"
	"strings"

	"github.com/katyakrsn/heritage/model"
)

// objectKinds maps the type tag of a metadata row to the object variant.
// Adding a variant is a one-entry change.
var objectKinds = map[string]model.ObjectKind{
	"NauticalChart":    model.KindNauticalChart,
	"ManuscriptPlate":  model.KindManuscriptPlate,
	"ManuscriptVolume": model.KindManuscriptVolume,
	"PrintedVolume":    model.KindPrintedVolume,
	"PrintedMaterial":  model.KindPrintedMaterial,
	"Herbarium":        model.KindHerbarium,
	"Specimen":         model.KindSpecimen,
	"Painting":         model.KindPainting,
	"Model":            model.KindModel,
	"Map":              model.KindMap,
}

// activityKinds maps the type tag of a process row to the activity variant.
var activityKinds = map[string]model.ActivityKind{
	"Acquisition": model.KindAcquisition,
	"Processing":  model.KindProcessing,
	"Modelling":   model.KindModelling,
	"Optimising":  model.KindOptimising,
	"Exporting":   model.KindExporting,
}

// Reconstructor maps tabular rows onto domain model instances. It is shared
// by all federation operations.
type Reconstructor struct {
	log *slog.Logger
}

// NewReconstructor creates a new reconstructor logging skipped rows to the
// given logger.
func NewReconstructor(logger *slog.Logger) *Reconstructor {
	return &Reconstructor{log: logger}
}

// Object reconstructs one cultural heritage object from a metadata row and
// its type tag. It returns false for unknown tags and rows without an
// identifier; such rows are logged, not failed on.
func (r *Reconstructor) Object(row model.Row, tag string) (*model.CulturalHeritageObject, bool) {
	kind, ok := objectKinds[tag]
	if !ok {
		r.log.Warn("Skipping row with unknown object type tag", slog.String("tag", tag))
		return nil, false
	}

	id := row.Str("id")
	if id == "" {
		r.log.Warn("Skipping object row without identifier", slog.String("tag", tag))
		return nil, false
	}

	object := &model.CulturalHeritageObject{
		ID:    id,
		Kind:  kind,
		Title: row.Str("title"),
		Date:  row.Str("date"),
		Owner: row.Str("owner"),
		Place: row.Str("place"),
	}

	// The author relation is only attached when both optional columns carry
	// a value; a person is never synthesized with a placeholder name.
	if row.Has("author_id") && row.Has("author_name") {
		object.Authors = append(object.Authors, &model.Person{
			ID:   row.Str("author_id"),
			Name: row.Str("author_name"),
		})
	}

	return object, true
}

// Objects reconstructs every row of a metadata result set, reading the type
// tag from the type_name column. It returns the reconstructed objects in row
// order and the number of skipped rows.
func (r *Reconstructor) Objects(rows model.ResultSet) ([]*model.CulturalHeritageObject, int) {
	objects := make([]*model.CulturalHeritageObject, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		object, ok := r.Object(row, row.Str("type_name"))
		if !ok {
			skipped++
			continue
		}
		objects = append(objects, object)
	}

	return objects, skipped
}

// Activity reconstructs one activity from a process row and its type tag.
// The referenced object is a placeholder carrying only the identifier; rows
// without an object identifier are skipped because an activity is never
// constructed without an object reference.
func (r *Reconstructor) Activity(row model.Row, tag string) (*model.Activity, bool) {
	kind, ok := activityKinds[tag]
	if !ok {
		r.log.Warn("Skipping row with unknown activity type tag", slog.String("tag", tag))
		return nil, false
	}

	objectID := row.Str("object_id")
	if objectID == "" {
		r.log.Warn("Skipping activity row without object identifier", slog.String("tag", tag))
		return nil, false
	}

	activity := &model.Activity{
		Kind:      kind,
		Object:    model.PlaceholderObject(objectID),
		Institute: row.Str("responsible_institute"),
		Person:    row.Str("responsible_person"),
		Tools:     splitList(row.Str("tool")),
		StartDate: row.Str("start_date"),
		EndDates:  splitList(row.Str("end_date")),
	}

	if kind == model.KindAcquisition {
		activity.Technique = row.Str("technique")
	}

	return activity, true
}

// Activities reconstructs every row of a process result set, reading the
// type tag from the type column. It returns the reconstructed activities in
// row order and the number of skipped rows.
func (r *Reconstructor) Activities(rows model.ResultSet) ([]*model.Activity, int) {
	activities := make([]*model.Activity, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		activity, ok := r.Activity(row, row.Str("type"))
		if !ok {
			skipped++
			continue
		}
		activities = append(activities, activity)
	}

	return activities, skipped
}

// Person reconstructs one person from a row carrying id (or identifier) and
// name columns. Rows without an identifier are skipped.
func (r *Reconstructor) Person(row model.Row) (*model.Person, bool) {
	id := row.Str("id")
	if id == "" {
		id = row.Str("identifier")
	}
	if id == "" {
		r.log.Warn("Skipping person row without identifier")
		return nil, false
	}

	return &model.Person{ID: id, Name: row.Str("name")}, true
}

// People reconstructs every row of a person result set, deduplicating by
// identifier against the seen set. The same set may be shared across calls
// to deduplicate over multiple result sets while preserving first-seen
// order. It returns the number of skipped rows (duplicates are not skips).
func (r *Reconstructor) People(rows model.ResultSet, seen map[string]bool) ([]*model.Person, int) {
	people := make([]*model.Person, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		person, ok := r.Person(row)
		if !ok {
			skipped++
			continue
		}
		if seen[person.ID] {
			continue
		}
		seen[person.ID] = true
		people = append(people, person)
	}

	return people, skipped
}

// splitList splits a comma-joined column value back into its ordered parts.
// The relational store flattens list-valued fields (tools, multi-valued end
// dates) into one comma separated string.
func splitList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}

	if len(values) == 0 {
		return nil
	}
	return values
}
