package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Row is one row of a tabular query result: a mapping from column name to
// scalar value. Backends disagree on native types (a SPARQL endpoint hands
// back strings where a SQL driver hands back int64 or float64), so all
// access goes through Str, which normalizes every scalar to its string
// representation. Identifiers in particular are always compared as strings.
type Row map[string]any

// ResultSet is an ordered sequence of rows returned by a query service.
type ResultSet []Row

// notAValue lists the sentinel markers backends use for "no value here".
var notAValue = map[string]bool{
	"":     true,
	"NaN":  true,
	"nan":  true,
	"None": true,
	"null": true,
	"<NA>": true,
}

// Str returns the value of the named column coerced to a string.
// Missing columns and not-a-value sentinels yield the empty string.
func (r Row) Str(col string) string {
	v, ok := r[col]
	if !ok {
		return ""
	}
	s := stringify(v)
	if notAValue[s] {
		return ""
	}
	return s
}

// Has reports whether the named column is present and carries an actual
// value (not a not-a-value sentinel).
func (r Row) Has(col string) bool {
	v, ok := r[col]
	if !ok || v == nil {
		return false
	}
	return !notAValue[stringify(v)]
}

// stringify coerces a scalar to its textual form. Integral floats are
// rendered without a decimal part so that numeric identifiers coming back
// as float64 (e.g. 42.0) compare equal to their textual form ("42").
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		if math.IsNaN(t) {
			return ""
		}
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
