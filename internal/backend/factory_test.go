package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"condo/internal/config"
	"condo/internal/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryDSN(t *testing.T) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
}

func TestTypeIsValid(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{MemoryBackend, true},
		{SQLiteBackend, true},
		{"sheets", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.IsValid())
		})
	}
}

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataBackend: "postgres"})
	assert.ErrorContains(t, err, "invalid backend type")

	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDSN: "x.db", SeedFile: "seed.json"})
	require.NoError(t, err)
	assert.Equal(t, Config{Type: SQLiteBackend, SQLiteDSN: "x.db", SeedFile: "seed.json"}, cfg)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.Error(t, Config{Type: "redis"}.Validate())
}

func TestCreateMemoryBackendSeeds(t *testing.T) {
	f := NewFactory(log.Discard().Logger)
	res, err := f.CreateBackend(context.Background(), Config{Type: MemoryBackend})
	require.NoError(t, err)
	defer res.Close()

	units, err := res.Store.ListUnits(context.Background())
	require.NoError(t, err)
	assert.Len(t, units, 9)
	assert.Equal(t, "Casa 1", units[0].Name)
}

func TestCreateSQLiteBackendSeedsOnce(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(nil)
	path := filepath.Join(t.TempDir(), "condo.db")

	res, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDSN: path})
	require.NoError(t, err)
	_, err = res.Store.DeleteUnit(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, res.Close())

	res, err = f.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDSN: path})
	require.NoError(t, err)
	defer res.Close()

	units, err := res.Store.ListUnits(ctx)
	require.NoError(t, err)
	assert.Len(t, units, 8)
}

func TestCreateBackendWithSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name":"Loja A","occupant":"Vago","rent":"1200.00","dueDay":5,"moveInDate":"2024-01-01"}
	]`), 0o600))

	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{
		Type:      SQLiteBackend,
		SQLiteDSN: memoryDSN(t),
		SeedFile:  path,
	})
	require.NoError(t, err)
	defer res.Close()

	units, err := res.Store.ListUnits(context.Background())
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.True(t, units[0].IsVacant())
	assert.Equal(t, "1200", units[0].Rent.String())
}

func TestCreateBackendBadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":""}]`), 0o600))

	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: MemoryBackend, SeedFile: path})
	assert.ErrorContains(t, err, "load seed")
}

func TestResultCloseNil(t *testing.T) {
	var r *Result
	assert.NoError(t, r.Close())
	assert.NoError(t, (&Result{}).Close())
}
