package log

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithOptions_JSONFile(t *testing.T) {
	t.Cleanup(func() { _ = Init("ERROR") })
	file := filepath.Join(t.TempDir(), "phonebook.log")

	require.NoError(t, InitWithOptions(Options{Level: "INFO", Format: FormatJSON, File: file, MaxSizeMB: 1}))
	GetLogger().Info("entry created", Int64("entry_id", 7), Strings("groups", []string{"Leitung"}))
	GetLogger().Debug("not written")

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "entry created", record["msg"])
	assert.Equal(t, "phonebook", record["service"])
	assert.EqualValues(t, 7, record["entry_id"])
}

func TestInitWithOptions_Rejects(t *testing.T) {
	t.Cleanup(func() { _ = Init("ERROR") })

	assert.Error(t, InitWithOptions(Options{Level: "LOUD"}))
	assert.Error(t, InitWithOptions(Options{Level: "INFO", Format: "xml"}))
}

func TestAudit(t *testing.T) {
	t.Cleanup(func() { _ = Init("ERROR") })
	file := filepath.Join(t.TempDir(), "audit.log")
	require.NoError(t, InitWithOptions(Options{Level: "INFO", Format: FormatJSON, File: file}))

	GetLogger().Audit(AuditEvent{
		InitiatorID:   "p1",
		InitiatorType: InitiatorTypeAdmin,
		TargetID:      "42",
		TargetType:    TargetTypeEntry,
		ActionID:      ActionDeleteEntry,
	})

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &record))
	assert.Equal(t, "AUDIT", record["msg"])

	var event AuditEvent
	require.NoError(t, json.Unmarshal([]byte(record["audit_event"].(string)), &event))
	assert.Equal(t, ActionDeleteEntry, event.ActionID)
	assert.Equal(t, "42", event.TargetID)
	assert.NotEmpty(t, event.RecordedAt)
}
