package repository

import (
	"path/filepath"
	"testing"

	"github.com/openpaddle/paddle-planner/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepo(t *testing.T) *SQLiteLocationRepository {
	t.Helper()
	repo, err := NewSQLiteLocationRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveAndLookup(t *testing.T) {
	repo := testRepo(t)

	require.NoError(t, repo.Save("15222", 40.4495, -80.0046))

	lat, lon, ok, err := repo.Lookup("15222")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 40.4495, lat)
	assert.Equal(t, -80.0046, lon)
}

func TestLookupMissingZip(t *testing.T) {
	repo := testRepo(t)

	_, _, ok, err := repo.Lookup("99999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveOverwritesExisting(t *testing.T) {
	repo := testRepo(t)

	require.NoError(t, repo.Save("15222", 1.0, 2.0))
	require.NoError(t, repo.Save("15222", 40.4495, -80.0046))

	lat, lon, ok, err := repo.Lookup("15222")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 40.4495, lat)
	assert.Equal(t, -80.0046, lon)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSaveLocationsBatch(t *testing.T) {
	repo := testRepo(t)

	locations := []entities.Location{
		{Zip: "15222", Name: "Pittsburgh", State: "PA", Latitude: 40.4495, Longitude: -80.0046},
		{Zip: "15470", Name: "Ohiopyle", State: "PA", Latitude: 39.8687, Longitude: -79.4937},
		{Zip: "16217", Name: "Cooksburg", State: "PA", Latitude: 41.3409, Longitude: -79.1984},
	}
	require.NoError(t, repo.SaveLocations(locations))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	lat, _, ok, err := repo.Lookup("15470")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 39.8687, lat)
}

func TestSaveLocationsUpsert(t *testing.T) {
	repo := testRepo(t)

	require.NoError(t, repo.SaveLocations([]entities.Location{
		{Zip: "15222", Latitude: 1.0, Longitude: 2.0},
	}))
	require.NoError(t, repo.SaveLocations([]entities.Location{
		{Zip: "15222", Name: "Pittsburgh", State: "PA", Latitude: 40.4495, Longitude: -80.0046},
	}))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	lat, _, ok, err := repo.Lookup("15222")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 40.4495, lat)
}
