package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCmdEnv(t, nil, args...)
}

// runCmdEnv runs the root command with env set on top of a memory backend.
func runCmdEnv(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("AMQP_URL", "")
	for k, v := range env {
		t.Setenv(k, v)
	}

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSummaryCommand(t *testing.T) {
	out, err := runCmd(t, "summary", "--month", "2025-03")
	require.NoError(t, err)

	var sum map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, float64(2025), sum["year"])
	assert.Equal(t, float64(3), sum["month"])
	assert.Equal(t, "7780", sum["monthlyIncome"])
	assert.Equal(t, "23340", sum["yearlyIncome"])
	assert.Equal(t, "3890", sum["monthlyPartnerShare"])
}

func TestSummaryCommandRejectsBadMonth(t *testing.T) {
	_, err := runCmd(t, "summary", "--month", "03/2025")
	assert.ErrorContains(t, err, "--month")
}

func TestUnitsCommand(t *testing.T) {
	out, err := runCmd(t, "units", "--at", "2025-03-10")
	require.NoError(t, err)

	var statuses []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &statuses))
	require.Len(t, statuses, 9)
	assert.Equal(t, "Casa 1", statuses[0]["name"])
	assert.Equal(t, "overdue", statuses[0]["payment"])
	assert.Equal(t, float64(8), statuses[0]["residenceYears"])
	assert.Equal(t, "pending", statuses[1]["payment"])
	assert.Equal(t, true, statuses[7]["vacant"])
}

func TestInvalidConfigFails(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "none.env"), "units"})
	assert.ErrorContains(t, root.Execute(), "invalid port")
}

func TestWorkerNeedsSheets(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	_, err := runCmd(t, "worker")
	assert.ErrorContains(t, err, "GOOGLE_SPREADSHEET_ID")
}

func TestWorkerNeedsSharedStore(t *testing.T) {
	sheets := map[string]string{
		"GOOGLE_SPREADSHEET_ID":       "sheet-id",
		"GOOGLE_SERVICE_ACCOUNT_JSON": `{"type":"service_account"}`,
	}
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"memory backend", map[string]string{}},
		{"in-memory sqlite", map[string]string{"DATA_BACKEND": "sqlite", "SQLITE_DSN": "file:condo?mode=memory&cache=shared"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{}
			for k, v := range sheets {
				env[k] = v
			}
			for k, v := range tt.env {
				env[k] = v
			}
			_, err := runCmdEnv(t, env, "worker")
			assert.ErrorContains(t, err, "DATA_BACKEND=sqlite")
		})
	}
}
