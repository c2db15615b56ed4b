package helper

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrettyHandler(t *testing.T) {
	t.Run("Create PrettyHandler with default options", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		require.NotNil(t, handler, "Expected NewPrettyHandler to return a non-nil handler")
		assert.NotNil(t, handler.Handler, "Expected handler to have a non-nil Handler field")
		assert.NotNil(t, handler.l, "Expected handler to have a non-nil logger field")
	})

	t.Run("Create PrettyHandler with debug level and source", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{
				AddSource: true,
				Level:     slog.LevelDebug,
			},
		})

		assert.NotNil(t, handler, "Expected NewPrettyHandler to return a non-nil handler")
	})
}

func TestPrettyHandlerHandle(t *testing.T) {
	ctx := context.Background()

	levels := []struct {
		name    string
		level   slog.Level
		label   string
		message string
		attr    slog.Attr
		value   string
	}{
		{"DEBUG", slog.LevelDebug, "DEBUG:", "SPARQL query answered", slog.Int("rows", 12), "12"},
		{"INFO", slog.LevelInfo, "INFO:", "Initialized MetadataQueryHandler", slog.String("endpoint", "http://localhost:9999/sparql"), "http://localhost:9999/sparql"},
		{"WARN", slog.LevelWarn, "WARN:", "Skipped rows with unknown type tags", slog.Int("skipped", 3), "3"},
		{"ERROR", slog.LevelError, "ERROR:", "Metadata handler failed", slog.String("error", "query service unavailable"), "query service unavailable"},
	}

	for _, test := range levels {
		t.Run("Handle "+test.name+" level log", func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewPrettyHandler(&buf, PrettyHandlerOptions{
				SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug},
			})

			record := slog.NewRecord(time.Now(), test.level, test.message, 0)
			record.AddAttrs(test.attr)

			require.NoError(t, handler.Handle(ctx, record), "Expected Handle to not return an error")

			output := buf.String()
			assert.Contains(t, output, test.label, "Expected output to contain the level label")
			assert.Contains(t, output, test.message, "Expected output to contain the message")
			assert.Contains(t, output, test.attr.Key, "Expected output to contain the attribute key")
			assert.Contains(t, output, test.value, "Expected output to contain the attribute value")
		})
	}

	t.Run("Handle log with no attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "Closed database connection", 0)

		require.NoError(t, handler.Handle(ctx, record))
		assert.Contains(t, buf.String(), "{}", "Expected output to contain empty JSON object for attributes")
	})

	t.Run("Handle log with nested attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "Engine answered", 0)
		record.AddAttrs(slog.Any("counts", map[string]any{"objects": 4, "people": 2}))

		require.NoError(t, handler.Handle(ctx, record))

		output := buf.String()
		assert.Contains(t, output, "counts", "Expected output to contain attribute key")
		assert.Contains(t, output, "objects", "Expected output to contain nested key")
	})

	t.Run("Handle log formats timestamp correctly", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "time test", 0)

		require.NoError(t, handler.Handle(ctx, record))
		assert.Regexp(t, `\[\d{2}:\d{2}:\d{2}\.\d{3}\]`, buf.String(),
			"Expected output to contain a [HH:MM:SS.mmm] timestamp")
	})
}
