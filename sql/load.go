package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
)

//go:embed activities.sql
var activitiesSQL string

// ActivityTables lists the five process tables in the order they are unioned.
// Every table shares the same layout; only Acquisition carries a technique
// column.
var ActivityTables = []string{
	"Acquisition",
	"Processing",
	"Modelling",
	"Optimising",
	"Exporting",
}

// Init creates the process tables if they do not exist yet.
func Init(db *sql.DB) error {
	_, err := db.Exec(activitiesSQL)
	if err != nil {
		return fmt.Errorf("error executing activities schema SQL: %w", err)
	}
	return nil
}

// ActivitiesQuery builds the UNION ALL query projecting all five process
// tables onto the shared activity schema (object_id, responsible_institute,
// responsible_person, technique, tool, start_date, end_date, type). The
// optional where clause is applied to every table and may use `?`
// placeholders; the same arguments must then be passed once per table.
func ActivitiesQuery(where string) string {
	selects := make([]string, 0, len(ActivityTables))
	for _, table := range ActivityTables {
		technique := "NULL AS technique"
		if table == "Acquisition" {
			technique = "technique"
		}
		stmt := fmt.Sprintf(
			"SELECT object_id, responsible_institute, responsible_person, %s, tool, start_date, end_date, '%s' AS type FROM %s",
			technique, table, table,
		)
		if where != "" {
			stmt += " WHERE " + where
		}
		selects = append(selects, stmt)
	}
	return strings.Join(selects, " UNION ALL ")
}

// AcquisitionsQuery builds the query over the Acquisition table alone, used
// for technique filtering.
func AcquisitionsQuery(where string) string {
	stmt := "SELECT object_id, responsible_institute, responsible_person, technique, tool, start_date, end_date, 'Acquisition' AS type FROM Acquisition"
	if where != "" {
		stmt += " WHERE " + where
	}
	return stmt
}

// Rebind rewrites `?` placeholders to the numbered `$N` form used by the
// postgres driver. Queries are built with `?` so the sqlite driver can use
// them directly.
func Rebind(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
