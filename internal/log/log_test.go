package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONLogger(buf *bytes.Buffer, component string) *Logger {
	return New(Config{Level: slog.LevelDebug, Format: "json", Component: component, Output: buf})
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	buf.Reset()
	return rec
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLoggerAddsComponentOnce(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, ComponentSession).WithComponent(ComponentStorage)

	l.Info("Expense recorded", FieldExpenseID, 3)
	rec := decodeLine(t, &buf)
	assert.Equal(t, ComponentStorage, rec[FieldComponent])
	assert.Equal(t, float64(3), rec[FieldExpenseID])
	assert.Equal(t, ComponentStorage, l.Component())
}

func TestWithLoggerAndFromContext(t *testing.T) {
	var buf bytes.Buffer
	base := newJSONLogger(&buf, ComponentHTTP)

	ctx := WithLogger(context.Background(), base.With(FieldRequestID, "req-1"))
	FromContext(ctx).Info("inside handler")

	rec := decodeLine(t, &buf)
	assert.Equal(t, "req-1", rec[FieldRequestID])

	assert.Equal(t, "unknown", FromContext(context.Background()).Component())
}

func TestStructuredLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newJSONLogger(&buf, ComponentApp))
	r := httptest.NewRequest(http.MethodPost, "/api/units?x=1", nil)

	sl.LogHTTPEnd(context.Background(), r, http.StatusUnprocessableEntity, 4, "10.0.0.1")
	rec := decodeLine(t, &buf)
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, ComponentHTTP, rec[FieldComponent])
	assert.Equal(t, false, rec[FieldSuccess])
	assert.Equal(t, "x=1", rec[FieldQuery])

	sl.LogHTTPEnd(context.Background(), r, http.StatusInternalServerError, 4, "10.0.0.1")
	assert.Equal(t, "ERROR", decodeLine(t, &buf)["level"])

	sl.LogError(context.Background(), "export failed", errors.New("boom"), ComponentSheets, OpExport, nil)
	rec = decodeLine(t, &buf)
	assert.Equal(t, "boom", rec[FieldError])
	assert.Equal(t, OpExport, rec[FieldOperation])
	assert.Equal(t, ComponentSheets, rec[FieldComponent])
}

func TestFieldsBuilder(t *testing.T) {
	f := NewFields().
		WithUnit(4, "Casa 4").
		WithExpense(9, "Manutenção", "200", "2025-03-05").
		WithRequestID("r").
		WithError(nil).
		With(FieldPeriod, "2025-03")

	assert.Equal(t, int64(4), f[FieldUnitID])
	assert.Equal(t, "2025-03", f[FieldPeriod])
	assert.Equal(t, "Manutenção", f[FieldAccountGroup])
	assert.NotContains(t, f, FieldError)
	assert.Len(t, f.ToSlice(), len(f)*2)
}
