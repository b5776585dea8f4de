package repositories

import (
	"database/sql"
	"fmt"

	"github.com/alimgiray/shiftledger/internal/models"
)

// HourAssignmentRepository stores the assignment half of the hour ledger
type HourAssignmentRepository struct {
	db *sql.DB
}

func NewHourAssignmentRepository(db *sql.DB) *HourAssignmentRepository {
	return &HourAssignmentRepository{db: db}
}

const assignmentSelect = `
	SELECT h.id, h.user_id, u.username, h.week_start, h.day_of_week, h.hour, h.assigned_by, h.assigned_at
	FROM hour_assignments h
	JOIN users u ON u.id = h.user_id
`

// Upsert writes the assignment, replacing assigner and timestamp if the slot is already taken
func (r *HourAssignmentRepository) Upsert(a *models.HourAssignment) error {
	query := `
		INSERT INTO hour_assignments (id, user_id, week_start, day_of_week, hour, assigned_by, assigned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, week_start, day_of_week, hour)
		DO UPDATE SET assigned_by = excluded.assigned_by, assigned_at = excluded.assigned_at
	`

	_, err := r.db.Exec(query, a.ID, a.UserID, a.WeekStart, a.DayOfWeek, a.Hour, a.AssignedBy, a.AssignedAt)
	if err != nil {
		return fmt.Errorf("error saving hour assignment: %w", err)
	}
	return nil
}

// Delete removes the assignment for a slot; a missing row is not an error
func (r *HourAssignmentRepository) Delete(slot models.HourSlot) error {
	query := `DELETE FROM hour_assignments WHERE user_id = ? AND week_start = ? AND day_of_week = ? AND hour = ?`

	if _, err := r.db.Exec(query, slot.UserID, slot.WeekStart, slot.DayOfWeek, slot.Hour); err != nil {
		return fmt.Errorf("error deleting hour assignment: %w", err)
	}
	return nil
}

// Exists reports whether the slot is assigned
func (r *HourAssignmentRepository) Exists(slot models.HourSlot) (bool, error) {
	query := `SELECT COUNT(*) FROM hour_assignments WHERE user_id = ? AND week_start = ? AND day_of_week = ? AND hour = ?`

	var count int
	if err := r.db.QueryRow(query, slot.UserID, slot.WeekStart, slot.DayOfWeek, slot.Hour).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking hour assignment: %w", err)
	}
	return count > 0, nil
}

// GetByWeek retrieves all assignments of a week ordered by user, day and hour
func (r *HourAssignmentRepository) GetByWeek(week models.WeekKey) ([]*models.HourAssignment, error) {
	query := assignmentSelect + `
		WHERE h.week_start = ?
		ORDER BY u.username, h.day_of_week, h.hour
	`
	return r.query(query, week)
}

// GetByUserWeek retrieves one user's assignments for a week ordered by day and hour
func (r *HourAssignmentRepository) GetByUserWeek(userID string, week models.WeekKey) ([]*models.HourAssignment, error) {
	query := assignmentSelect + `
		WHERE h.user_id = ? AND h.week_start = ?
		ORDER BY h.day_of_week, h.hour
	`
	return r.query(query, userID, week)
}

// GetByUserWeekRange retrieves a user's assignments for every week from first to last inclusive
func (r *HourAssignmentRepository) GetByUserWeekRange(userID string, first, last models.WeekKey) ([]*models.HourAssignment, error) {
	query := assignmentSelect + `
		WHERE h.user_id = ? AND h.week_start >= ? AND h.week_start <= ?
		ORDER BY h.week_start, h.day_of_week, h.hour
	`
	return r.query(query, userID, first, last)
}

// CountByUserWeek counts a user's assigned hours in a week
func (r *HourAssignmentRepository) CountByUserWeek(userID string, week models.WeekKey) (int, error) {
	query := `SELECT COUNT(*) FROM hour_assignments WHERE user_id = ? AND week_start = ?`

	var count int
	if err := r.db.QueryRow(query, userID, week).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting hour assignments: %w", err)
	}
	return count, nil
}

func (r *HourAssignmentRepository) query(query string, args ...interface{}) ([]*models.HourAssignment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing hour assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.HourAssignment
	for rows.Next() {
		var a models.HourAssignment
		var week string
		err := rows.Scan(&a.ID, &a.UserID, &a.Username, &week, &a.DayOfWeek, &a.Hour, &a.AssignedBy, &a.AssignedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning hour assignment: %w", err)
		}
		a.WeekStart = models.WeekKey(week)
		assignments = append(assignments, &a)
	}

	return assignments, rows.Err()
}
