package repositories

import (
	"testing"
	"time"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyScheduleRepository_MissingWeek(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewWeeklyScheduleRepository(db)

	schedule, err := repo.GetByWeek(testWeek)
	require.NoError(t, err)
	assert.Nil(t, schedule)
}

func TestWeeklyScheduleRepository_UpsertRestamps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewWeeklyScheduleRepository(db)

	first := models.DraftSchedule(testWeek)
	first.MarkFinalized("manager-1", time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(first))

	second := models.DraftSchedule(testWeek)
	second.MarkFinalized("manager-2", time.Date(2025, 1, 11, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(second))

	stored, err := repo.GetByWeek(testWeek)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.IsFinalized())
	require.NotNil(t, stored.FinalizedBy)
	assert.Equal(t, "manager-2", *stored.FinalizedBy)
	require.NotNil(t, stored.FinalizedAt)
	assert.Equal(t, 11, stored.FinalizedAt.Day())
}
