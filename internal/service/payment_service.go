package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rmendes/academia-api/internal/models"
	appErrors "github.com/rmendes/academia-api/pkg/errors"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	ListByStudent(ctx context.Context, alunoID string) ([]models.Payment, error)
}

type paymentStudentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// RegisterPaymentRequest is the payload for recording a payment.
type RegisterPaymentRequest struct {
	AlunoID string `json:"aluno_id" validate:"required"`
	Periodo string `json:"periodo" validate:"required"`
}

// PaymentService records pagamentos against existing students.
type PaymentService struct {
	repo      paymentRepository
	students  paymentStudentFinder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs the payment service.
func NewPaymentService(repo paymentRepository, students paymentStudentFinder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{repo: repo, students: students, cache: cache, validator: validate, logger: logger}
}

// Register creates a payment for an existing student. An unknown aluno_id
// fails with not-found and writes nothing. The payment date is the creation
// time, evaluated per call.
func (s *PaymentService) Register(ctx context.Context, req RegisterPaymentRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	if _, err := s.students.FindByID(ctx, req.AlunoID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	payment := &models.Payment{
		AlunoID:       req.AlunoID,
		DataPagamento: time.Now().UTC(),
		Periodo:       req.Periodo,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create payment")
	}

	if err := s.cache.Invalidate(ctx, cachePatternAlunos); err != nil {
		s.logger.Warn("failed to invalidate student caches", zap.Error(err))
	}

	return payment, nil
}
