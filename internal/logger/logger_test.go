package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNewLogger_RoleField verifies that every log entry produced by a logger
// created with NewLogger contains the expected "role" field.
func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("kiosk")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "kiosk", entry["role"])
	assert.Contains(t, entry, "time")
}

func TestNewLogger_CallerFieldName(t *testing.T) {
	NewLogger("caller-role")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

// TestOperator_TagsChannel verifies that operator entries are emitted at
// error level with the operator channel tag.
func TestOperator_TagsChannel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("kiosk")
	l.Logger = l.Output(&buf)

	l.Operator().Str("profile_id", "p1").Msg("corrupt credential")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, OperatorChannel, entry["channel"])
	assert.Equal(t, "p1", entry["profile_id"])
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("parent")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "abc")
	})
	child.Info().Msg("child")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "parent", entry["role"])
	assert.Equal(t, "abc", entry["trace_id"])
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("ctx")
	l.Logger = l.Output(&buf)

	ctx := l.WithContext(context.Background())
	FromContext(ctx).Info().Msg("from ctx")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "ctx", entry["role"])
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("req")
	l.Logger = l.Output(&buf)

	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(l.WithContext(r.Context()))
	FromRequest(r).Info().Msg("from request")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "req", entry["role"])
}

func TestNewFileLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kioskctl.log")

	l := NewFileLogger("kioskctl", path)
	l.Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
