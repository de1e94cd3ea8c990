package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskhub/task-system/internal/constants"
	"github.com/taskhub/task-system/internal/models"
	"github.com/taskhub/task-system/internal/repository"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrPositionNotFound     = errors.New("position not found")
	ErrWorkerNotFound       = errors.New("worker not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration and credential checks. Password
// hashing is delegated to bcrypt.
type AuthService struct {
	workerRepo  repository.WorkerRepository
	catalogRepo repository.CatalogRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(workerRepo repository.WorkerRepository, catalogRepo repository.CatalogRepository) *AuthService {
	return &AuthService{
		workerRepo:  workerRepo,
		catalogRepo: catalogRepo,
	}
}

// RegisterInput represents the signup form fields.
type RegisterInput struct {
	Username   string
	Email      string
	FirstName  string
	LastName   string
	PositionID uint64
	Password1  string
	Password2  string
}

// Register validates the signup input and creates the worker.
func (s *AuthService) Register(input RegisterInput) (*models.Worker, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	if input.Password1 != input.Password2 {
		return nil, ErrPasswordMismatch
	}
	if len(input.Password1) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.workerRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.workerRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.catalogRepo.FindPosition(input.PositionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, fmt.Errorf("failed to check position: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	worker := &models.Worker{
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PositionID:   input.PositionID,
		PasswordHash: string(hashedPassword),
	}

	if err := s.workerRepo.Create(worker); err != nil {
		// Duplicate commits lose the race between the pre-check and the
		// insert; resurface them as the field-level error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	return worker, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated worker.
func (s *AuthService) Login(input LoginInput) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return worker, nil
}

// GetWorker retrieves a worker by ID with the position loaded.
func (s *AuthService) GetWorker(id uint64) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByID(id, "Position")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	return worker, nil
}
