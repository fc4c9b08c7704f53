package seed

import (
	"os"
	"path/filepath"
	"testing"

	"condo/internal/aggregate"
	"condo/internal/core"
	"condo/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeed(t *testing.T) {
	units := Default()
	require.Len(t, units, 9)
	assert.Equal(t, "Casa 1", units[0].Name)
	assert.Equal(t, "Esperança", units[0].Nickname)
	assert.Equal(t, 5, units[0].DueDay)
	assert.Equal(t, "1993-01-01", units[3].MoveInDate.String())

	r := registry.New(units...)
	vacant := 0
	for _, u := range r.List() {
		if u.IsVacant() {
			vacant++
			assert.Equal(t, "Casa 8", u.Name)
		}
	}
	assert.Equal(t, 1, vacant)

	assert.Equal(t, "7780", aggregate.TotalIncome(r.List()).String())
}

func TestLoad(t *testing.T) {
	units, err := Load("")
	require.NoError(t, err)
	assert.Len(t, units, 9)

	dir := t.TempDir()
	good := filepath.Join(dir, "units.json")
	require.NoError(t, os.WriteFile(good, []byte(`[{"name":"Casa A","occupant":"Ana","rent":"1.200,00","dueDay":31,"moveInDate":"2024-02-29"}]`), 0o644))
	units, err = Load(good)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "1200", units[0].Rent.String())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"name":"","dueDay":5,"moveInDate":"2024-01-01"}]`), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, core.ErrEmptyName)

	unknown := filepath.Join(dir, "unknown.json")
	require.NoError(t, os.WriteFile(unknown, []byte(`[{"name":"x","color":"blue"}]`), 0o644))
	_, err = Load(unknown)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
