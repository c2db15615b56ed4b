package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityEndDate(t *testing.T) {
	t.Run("No end date", func(t *testing.T) {
		activity := &Activity{Kind: KindProcessing, Object: PlaceholderObject("1")}
		assert.Equal(t, "", activity.EndDate(), "Expected empty end date when none is recorded")
	})

	t.Run("Single end date", func(t *testing.T) {
		activity := &Activity{Kind: KindExporting, Object: PlaceholderObject("1"), EndDates: []string{"2020-01-01"}}
		assert.Equal(t, "2020-01-01", activity.EndDate())
	})

	t.Run("Multi-valued end dates keep order and report the last", func(t *testing.T) {
		activity := &Activity{
			Kind:     KindExporting,
			Object:   PlaceholderObject("1"),
			EndDates: []string{"2019-06-01", "2020-01-01"},
		}
		assert.Equal(t, "2020-01-01", activity.EndDate())
		assert.Equal(t, []string{"2019-06-01", "2020-01-01"}, activity.EndDates, "Expected the full ordered list to be preserved")
	})
}

func TestPlaceholderObject(t *testing.T) {
	object := PlaceholderObject("42")

	require.NotNil(t, object)
	assert.Equal(t, "42", object.Identifier())
	assert.Empty(t, object.Title, "Expected placeholder to carry no metadata")
	assert.Empty(t, object.Owner)
	assert.Empty(t, object.Authors)
}

func TestPersonIdentifier(t *testing.T) {
	person := &Person{ID: "VIAF:123", Name: "Maria Sibylla Merian"}
	assert.Equal(t, "VIAF:123", person.Identifier())
}
