package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rmendes/academia-api/internal/models"
	appErrors "github.com/rmendes/academia-api/pkg/errors"
)

type credentialRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Credential, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, cred *models.Credential) error
}

// CredentialService handles login account registration and startup seeding.
type CredentialService struct {
	repo      credentialRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCredentialService constructs the credential service.
func NewCredentialService(repo credentialRepository, validate *validator.Validate, logger *zap.Logger) *CredentialService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CredentialService{repo: repo, validator: validate, logger: logger}
}

// Register creates a new login account. Duplicate usernames fail with a
// conflict error and leave the existing credential untouched.
func (s *CredentialService) Register(ctx context.Context, req models.RegisterCredentialRequest) (*models.CredentialInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid credential payload")
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate username")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	cred := &models.Credential{Username: req.Username, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, cred); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create credential")
	}

	return &models.CredentialInfo{Username: cred.Username}, nil
}

// EnsureDefaultAdmin seeds the configured admin account when it is absent.
// Called once at startup; a second run is a no-op.
func (s *CredentialService) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check admin credential")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash admin password")
	}

	cred := &models.Credential{Username: username, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, cred); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed admin credential")
	}

	s.logger.Info("seeded default admin credential", zap.String("username", username))
	return nil
}
