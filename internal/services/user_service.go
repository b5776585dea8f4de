package services

import (
	"strings"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/internal/repositories"
	"github.com/alimgiray/shiftledger/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type UserService struct {
	userRepo *repositories.UserRepository
}

func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Register creates an employee account
func (s *UserService) Register(username, password, confirmPassword, department string) (*models.User, error) {
	username = strings.TrimSpace(username)
	department = strings.TrimSpace(department)
	if username == "" || password == "" || confirmPassword == "" || department == "" {
		return nil, validationError("all fields are required")
	}
	if password != confirmPassword {
		return nil, validationError("passwords do not match")
	}
	if len(password) < minPasswordLength {
		return nil, validationError("password must be at least %d characters long", minPasswordLength)
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, validationError("username already exists")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.NewUser(username, hash, models.RoleEmployee, department)
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.WithField("username", username).Info("User registered")
	return user, nil
}

// Authenticate checks a username and password pair
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, authorizationError("invalid credentials")
	}
	return user, nil
}

// EnsureDefaultAdmin creates the admin account on first start
func (s *UserService) EnsureDefaultAdmin(username, password, department string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	created, err := s.userRepo.CreateIfNotExists(models.NewUser(username, hash, models.RoleAdmin, department))
	if err != nil {
		return err
	}
	if created {
		logger.Infof("Default admin user %s created", username)
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundError("user %s not found", id)
	}
	return user, nil
}

// ListUsers lists every user
func (s *UserService) ListUsers(principal models.Principal) ([]*models.User, error) {
	if !principal.CanManage() {
		return nil, authorizationError("manager access required")
	}
	return s.userRepo.GetAll()
}

// ListDepartmentUsers lists the users of one department
func (s *UserService) ListDepartmentUsers(principal models.Principal, department string) ([]*models.User, error) {
	if !principal.CanManage() {
		return nil, authorizationError("manager access required")
	}
	return s.userRepo.GetByDepartment(department)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
