package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alimgiray/shiftledger/internal/models"
)

type WeeklyScheduleRepository struct {
	db *sql.DB
}

func NewWeeklyScheduleRepository(db *sql.DB) *WeeklyScheduleRepository {
	return &WeeklyScheduleRepository{db: db}
}

// GetByWeek retrieves the stored schedule for a week, returning nil when none exists
func (r *WeeklyScheduleRepository) GetByWeek(week models.WeekKey) (*models.WeeklySchedule, error) {
	query := `SELECT week_start, status, finalized_by, finalized_at FROM weekly_schedules WHERE week_start = ?`

	var schedule models.WeeklySchedule
	var weekStart string
	err := r.db.QueryRow(query, week).Scan(&weekStart, &schedule.Status, &schedule.FinalizedBy, &schedule.FinalizedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting weekly schedule: %w", err)
	}

	schedule.WeekStart = models.WeekKey(weekStart)
	return &schedule, nil
}

// Upsert creates or overwrites the schedule row for its week
func (r *WeeklyScheduleRepository) Upsert(schedule *models.WeeklySchedule) error {
	query := `
		INSERT INTO weekly_schedules (week_start, status, finalized_by, finalized_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (week_start) DO UPDATE SET
			status = excluded.status,
			finalized_by = excluded.finalized_by,
			finalized_at = excluded.finalized_at,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, schedule.WeekStart, schedule.Status, schedule.FinalizedBy, schedule.FinalizedAt, time.Now())
	if err != nil {
		return fmt.Errorf("error saving weekly schedule: %w", err)
	}
	return nil
}
