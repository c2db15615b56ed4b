package federation

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/katyakrsn/heritage/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubMetadata is an in-memory metadata query service honoring the tabular
// contracts of the real handler.
type stubMetadata struct {
	people  model.ResultSet // columns: id, name
	objects model.ResultSet // columns: type_name, id, title, date, owner, place, author_id?, author_name?
	byID    map[string]model.ResultSet
	authors map[string]model.ResultSet
	err     error
}

func (s *stubMetadata) GetByID(ctx context.Context, id string) (model.ResultSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byID[id], nil
}

func (s *stubMetadata) GetAllPeople(ctx context.Context) (model.ResultSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.people, nil
}

func (s *stubMetadata) GetAllCulturalHeritageObjects(ctx context.Context) (model.ResultSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.objects, nil
}

func (s *stubMetadata) GetAuthorsOfCulturalHeritageObject(ctx context.Context, id string) (model.ResultSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.authors[id], nil
}

func (s *stubMetadata) GetCulturalHeritageObjectsAuthoredBy(ctx context.Context, authorID string) (model.ResultSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	var matched model.ResultSet
	for _, row := range s.objects {
		if row.Str("author_id") == authorID {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// stubProcess is an in-memory process query service honoring the filter
// semantics of the real handler: case-insensitive substring containment and
// inclusive lexical date bounds.
type stubProcess struct {
	activities model.ResultSet
	err        error
}

func (s *stubProcess) filter(keep func(model.Row) bool) (model.ResultSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	var matched model.ResultSet
	for _, row := range s.activities {
		if keep(row) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func containsFold(value, partial string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(partial))
}

func (s *stubProcess) GetAllActivities(ctx context.Context) (model.ResultSet, error) {
	return s.filter(func(model.Row) bool { return true })
}

func (s *stubProcess) GetActivitiesByResponsibleInstitution(ctx context.Context, partial string) (model.ResultSet, error) {
	return s.filter(func(row model.Row) bool {
		return containsFold(row.Str("responsible_institute"), partial)
	})
}

func (s *stubProcess) GetActivitiesByResponsiblePerson(ctx context.Context, partial string) (model.ResultSet, error) {
	return s.filter(func(row model.Row) bool {
		return containsFold(row.Str("responsible_person"), partial)
	})
}

func (s *stubProcess) GetActivitiesUsingTool(ctx context.Context, partial string) (model.ResultSet, error) {
	return s.filter(func(row model.Row) bool {
		return containsFold(row.Str("tool"), partial)
	})
}

func (s *stubProcess) GetActivitiesStartedAfter(ctx context.Context, date string) (model.ResultSet, error) {
	return s.filter(func(row model.Row) bool {
		return row.Str("start_date") >= date
	})
}

func (s *stubProcess) GetActivitiesEndedBefore(ctx context.Context, date string) (model.ResultSet, error) {
	return s.filter(func(row model.Row) bool {
		end := row.Str("end_date")
		return end != "" && end <= date
	})
}

func (s *stubProcess) GetAcquisitionsByTechnique(ctx context.Context, partial string) (model.ResultSet, error) {
	return s.filter(func(row model.Row) bool {
		return row.Str("type") == "Acquisition" && containsFold(row.Str("technique"), partial)
	})
}
