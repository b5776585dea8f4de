package repositories

import (
	"database/sql"
	"fmt"

	"github.com/alimgiray/shiftledger/internal/models"
)

type TimesheetRepository struct {
	db *sql.DB
}

func NewTimesheetRepository(db *sql.DB) *TimesheetRepository {
	return &TimesheetRepository{db: db}
}

const timesheetSelect = `
	SELECT t.id, t.user_id, u.username, u.department, t.date, t.start_time, t.end_time,
	       t.total_hours, t.status, t.created_at
	FROM timesheets t
	JOIN users u ON u.id = t.user_id
`

// Upsert stores the entry, replacing any entry the user already has for that date.
// A replaced entry goes back to pending.
func (r *TimesheetRepository) Upsert(entry *models.TimesheetEntry) error {
	query := `
		INSERT INTO timesheets (id, user_id, date, start_time, end_time, total_hours, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			total_hours = excluded.total_hours,
			status = excluded.status
	`

	_, err := r.db.Exec(query,
		entry.ID, entry.UserID, entry.Date, entry.StartTime, entry.EndTime,
		entry.TotalHours, entry.Status, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error saving timesheet: %w", err)
	}
	return nil
}

// GetByUserDate retrieves a user's entry for a date, returning nil when absent
func (r *TimesheetRepository) GetByUserDate(userID, date string) (*models.TimesheetEntry, error) {
	entries, err := r.query(timesheetSelect+` WHERE t.user_id = ? AND t.date = ?`, userID, date)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

// GetByUserMonth retrieves a user's entries for a month ordered by date
func (r *TimesheetRepository) GetByUserMonth(userID string, year, month int) ([]*models.TimesheetEntry, error) {
	query := timesheetSelect + `
		WHERE t.user_id = ? AND strftime('%Y', t.date) = ? AND strftime('%m', t.date) = ?
		ORDER BY t.date
	`
	return r.query(query, userID, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
}

// GetByMonth retrieves every user's entries for a month, newest first
func (r *TimesheetRepository) GetByMonth(year, month int) ([]*models.TimesheetEntry, error) {
	query := timesheetSelect + `
		WHERE strftime('%Y', t.date) = ? AND strftime('%m', t.date) = ?
		ORDER BY t.date DESC, u.username
	`
	return r.query(query, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
}

// GetPending retrieves entries awaiting review, newest first
func (r *TimesheetRepository) GetPending() ([]*models.TimesheetEntry, error) {
	query := timesheetSelect + `
		WHERE t.status = ?
		ORDER BY t.date DESC, u.username
	`
	return r.query(query, models.TimesheetPending)
}

// SumHours totals a user's recorded hours for dates in [from, to], skipping excludeDate
func (r *TimesheetRepository) SumHours(userID, from, to, excludeDate string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(total_hours), 0) FROM timesheets
		WHERE user_id = ? AND date >= ? AND date <= ? AND date != ?
	`

	var total float64
	if err := r.db.QueryRow(query, userID, from, to, excludeDate).Scan(&total); err != nil {
		return 0, fmt.Errorf("error summing timesheet hours: %w", err)
	}
	return total, nil
}

// UpdateStatus sets the review status of an entry, reporting whether it existed
func (r *TimesheetRepository) UpdateStatus(id string, status models.TimesheetStatus) (bool, error) {
	result, err := r.db.Exec(`UPDATE timesheets SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return false, fmt.Errorf("error updating timesheet status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error getting rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *TimesheetRepository) query(query string, args ...interface{}) ([]*models.TimesheetEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing timesheets: %w", err)
	}
	defer rows.Close()

	var entries []*models.TimesheetEntry
	for rows.Next() {
		var e models.TimesheetEntry
		err := rows.Scan(
			&e.ID, &e.UserID, &e.Username, &e.Department, &e.Date, &e.StartTime, &e.EndTime,
			&e.TotalHours, &e.Status, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning timesheet: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
