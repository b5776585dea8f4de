package repositories

import (
	"database/sql"
	"fmt"

	"github.com/alimgiray/shiftledger/internal/models"
)

// AvailabilityRepository stores the availability half of the hour ledger
type AvailabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ReplaceForDay deletes every window for the window's (user, week, day) and inserts
// the given one, atomically
func (r *AvailabilityRepository) ReplaceForDay(window *models.AvailabilityWindow) error {
	if window.HourEnd <= window.HourStart {
		return fmt.Errorf("hour end %d must be after hour start %d", window.HourEnd, window.HourStart)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`DELETE FROM availability_windows WHERE user_id = ? AND week_start = ? AND day_of_week = ?`,
		window.UserID, window.WeekStart, window.DayOfWeek,
	)
	if err != nil {
		return fmt.Errorf("error clearing availability: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO availability_windows (id, user_id, week_start, day_of_week, hour_start, hour_end, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		window.ID, window.UserID, window.WeekStart, window.DayOfWeek,
		window.HourStart, window.HourEnd, window.Status, window.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting availability: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing availability: %w", err)
	}
	return nil
}

// GetByUserWeek retrieves a user's windows for a week ordered by day then start hour
func (r *AvailabilityRepository) GetByUserWeek(userID string, week models.WeekKey) ([]*models.AvailabilityWindow, error) {
	query := `
		SELECT a.id, a.user_id, u.username, u.department, a.week_start, a.day_of_week,
		       a.hour_start, a.hour_end, a.status, a.created_at
		FROM availability_windows a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = ? AND a.week_start = ?
		ORDER BY a.day_of_week, a.hour_start
	`
	return r.query(query, userID, week)
}

// GetByWeek retrieves every user's windows for a week, joined with user identity
func (r *AvailabilityRepository) GetByWeek(week models.WeekKey) ([]*models.AvailabilityWindow, error) {
	query := `
		SELECT a.id, a.user_id, u.username, u.department, a.week_start, a.day_of_week,
		       a.hour_start, a.hour_end, a.status, a.created_at
		FROM availability_windows a
		JOIN users u ON u.id = a.user_id
		WHERE a.week_start = ?
		ORDER BY u.username, a.day_of_week, a.hour_start
	`
	return r.query(query, week)
}

func (r *AvailabilityRepository) query(query string, args ...interface{}) ([]*models.AvailabilityWindow, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing availability: %w", err)
	}
	defer rows.Close()

	var windows []*models.AvailabilityWindow
	for rows.Next() {
		var w models.AvailabilityWindow
		var week string
		err := rows.Scan(
			&w.ID, &w.UserID, &w.Username, &w.Department, &week, &w.DayOfWeek,
			&w.HourStart, &w.HourEnd, &w.Status, &w.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning availability: %w", err)
		}
		w.WeekStart = models.WeekKey(week)
		windows = append(windows, &w)
	}

	return windows, rows.Err()
}
