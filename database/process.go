package database

import (
	"context"
	dbsql "database/sql"
	"fmt"
	"log/slog"

	"github.com/katyakrsn/heritage/helper"
	"github.com/katyakrsn/heritage/model"
	"github.com/katyakrsn/heritage/sql"
)

// ProcessQueryFunctions defines the interface for process (relational store)
// query operations. All filter arguments are matched case-insensitively as
// substrings; date bounds are inclusive lexical comparisons on the textual
// date columns.
type ProcessQueryFunctions interface {
	GetAllActivities(ctx context.Context) (model.ResultSet, error)
	GetActivitiesByResponsibleInstitution(ctx context.Context, partial string) (model.ResultSet, error)
	GetActivitiesByResponsiblePerson(ctx context.Context, partial string) (model.ResultSet, error)
	GetActivitiesUsingTool(ctx context.Context, partial string) (model.ResultSet, error)
	GetActivitiesStartedAfter(ctx context.Context, date string) (model.ResultSet, error)
	GetActivitiesEndedBefore(ctx context.Context, date string) (model.ResultSet, error)
	GetAcquisitionsByTechnique(ctx context.Context, partial string) (model.ResultSet, error)
}

// ProcessQueryHandler answers process queries against the relational store
// holding the five activity tables.
type ProcessQueryHandler struct {
	db *helper.Database
}

// NewProcessQueryHandler creates a new process query handler and makes sure
// the activity tables exist.
func NewProcessQueryHandler(db *helper.Database) (*ProcessQueryHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	if err := sql.Init(db.Instance); err != nil {
		return nil, helper.NewError("create activity tables", err)
	}

	db.Logger.Info("Initialized ProcessQueryHandler")

	return &ProcessQueryHandler{db: db}, nil
}

// GetAllActivities returns every activity across all five tables.
func (h *ProcessQueryHandler) GetAllActivities(ctx context.Context) (model.ResultSet, error) {
	return h.queryActivities(ctx, "")
}

// GetActivitiesByResponsibleInstitution returns activities whose responsible
// institute contains the given string, case-insensitively.
func (h *ProcessQueryHandler) GetActivitiesByResponsibleInstitution(ctx context.Context, partial string) (model.ResultSet, error) {
	return h.queryActivities(ctx, "LOWER(responsible_institute) LIKE LOWER(?)", contains(partial))
}

// GetActivitiesByResponsiblePerson returns activities whose responsible
// person contains the given string, case-insensitively.
func (h *ProcessQueryHandler) GetActivitiesByResponsiblePerson(ctx context.Context, partial string) (model.ResultSet, error) {
	return h.queryActivities(ctx, "LOWER(responsible_person) LIKE LOWER(?)", contains(partial))
}

// GetActivitiesUsingTool returns activities whose tool list contains the
// given string, case-insensitively.
func (h *ProcessQueryHandler) GetActivitiesUsingTool(ctx context.Context, partial string) (model.ResultSet, error) {
	return h.queryActivities(ctx, "LOWER(tool) LIKE LOWER(?)", contains(partial))
}

// GetActivitiesStartedAfter returns activities whose start date is on or
// after the given date (inclusive lexical comparison).
func (h *ProcessQueryHandler) GetActivitiesStartedAfter(ctx context.Context, date string) (model.ResultSet, error) {
	return h.queryActivities(ctx, "start_date >= ?", date)
}

// GetActivitiesEndedBefore returns activities whose end date is on or before
// the given date (inclusive lexical comparison).
func (h *ProcessQueryHandler) GetActivitiesEndedBefore(ctx context.Context, date string) (model.ResultSet, error) {
	return h.queryActivities(ctx, "end_date <= ?", date)
}

// GetAcquisitionsByTechnique returns acquisition activities whose technique
// contains the given string, case-insensitively.
func (h *ProcessQueryHandler) GetAcquisitionsByTechnique(ctx context.Context, partial string) (model.ResultSet, error) {
	query := sql.AcquisitionsQuery("LOWER(technique) LIKE LOWER(?)")
	return h.query(ctx, query, contains(partial))
}

// queryActivities runs the five-table UNION query with the optional where
// clause. The where arguments are repeated once per unioned table.
func (h *ProcessQueryHandler) queryActivities(ctx context.Context, where string, args ...any) (model.ResultSet, error) {
	query := sql.ActivitiesQuery(where)

	repeated := make([]any, 0, len(args)*len(sql.ActivityTables))
	if len(args) > 0 {
		for range sql.ActivityTables {
			repeated = append(repeated, args...)
		}
	}

	return h.query(ctx, query, repeated...)
}

func (h *ProcessQueryHandler) query(ctx context.Context, query string, args ...any) (model.ResultSet, error) {
	if h.db.Driver == helper.DriverPostgres {
		query = sql.Rebind(query)
	}

	rows, err := h.db.Instance.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, helper.NewError("query activities", fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	defer rows.Close()

	var results model.ResultSet
	for rows.Next() {
		var objectID, institute, person, technique, tool, startDate, endDate dbsql.NullString
		var kind string

		err := rows.Scan(&objectID, &institute, &person, &technique, &tool, &startDate, &endDate, &kind)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		results = append(results, model.Row{
			"object_id":             nullable(objectID),
			"responsible_institute": nullable(institute),
			"responsible_person":    nullable(person),
			"technique":             nullable(technique),
			"tool":                  nullable(tool),
			"start_date":            nullable(startDate),
			"end_date":              nullable(endDate),
			"type":                  kind,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, helper.NewError("rows error", fmt.Errorf("%w: %v", ErrUnavailable, err))
	}

	h.db.Logger.Debug("Activity query answered", slog.Int("rows", len(results)))

	return results, nil
}

func contains(partial string) string {
	return "%" + partial + "%"
}

func nullable(s dbsql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}
