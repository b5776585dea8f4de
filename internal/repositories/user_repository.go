package repositories

import (
	"database/sql"
	"fmt"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/google/uuid"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, username, password_hash, role, department, created_at`

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, role, department, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		user.ID.String(),
		user.Username,
		user.PasswordHash,
		user.Role,
		user.Department,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// CreateIfNotExists inserts the user unless the username is taken, reporting whether a row was written
func (r *UserRepository) CreateIfNotExists(user *models.User) (bool, error) {
	query := `
		INSERT OR IGNORE INTO users (id, username, password_hash, role, department, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		user.ID.String(),
		user.Username,
		user.PasswordHash,
		user.Role,
		user.Department,
		user.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("error creating user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error getting rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// GetByID retrieves a user by ID, returning nil when absent
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.getOne(query, id)
}

// GetByUsername retrieves a user by username, returning nil when absent
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return r.getOne(query, username)
}

// GetAll retrieves all users, newest first
func (r *UserRepository) GetAll() ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, username`
	return r.getMany(query)
}

// GetByDepartment retrieves the users of a department ordered by username
func (r *UserRepository) GetByDepartment(department string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE department = ? ORDER BY username`
	return r.getMany(query, department)
}

func (r *UserRepository) getOne(query string, args ...interface{}) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) getMany(query string, args ...interface{}) ([]*models.User, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var userID string
	err := row.Scan(
		&userID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.Department,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.ID, err = uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
