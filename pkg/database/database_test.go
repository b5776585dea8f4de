package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 5)

	for i, m := range migrations {
		assert.Equal(t, float64(i+1), m.Version)
		assert.NotEmpty(t, m.Script)
	}
	assert.Equal(t, "create users", migrations[0].Description)
}

func TestOpenCreatesSchema(t *testing.T) {
	db, err := Open(MemoryPath)
	require.NoError(t, err)
	defer db.Close()

	tables := []string{"users", "availability_windows", "hour_assignments", "weekly_schedules", "timesheets"}
	for _, table := range tables {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}

	// Running migrations again is a no-op
	assert.NoError(t, RunMigrations(db))
}
