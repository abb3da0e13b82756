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

const (
	cacheKeyStudentList = "alunos:list"
	cacheKeyDelinquents = "alunos:inadimplentes"
	cachePatternAlunos  = "alunos:*"
)

type studentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ListDelinquent(ctx context.Context) ([]models.Student, error)
}

type studentPaymentRepository interface {
	ListByStudent(ctx context.Context, alunoID string) ([]models.Payment, error)
}

// CreateStudentRequest holds the payload for registering students. Optional
// timestamps default at call time, never at process start.
type CreateStudentRequest struct {
	Nome             string     `json:"nome" validate:"required"`
	Contato          string     `json:"contato" validate:"required"`
	Telefone         string     `json:"telefone"`
	FormaPagamento   string     `json:"forma_pagamento" validate:"required"`
	ValorMensalidade float64    `json:"valor_mensalidade" validate:"required,gt=0"`
	DataMatricula    *time.Time `json:"data_matricula"`
	FimPlano         *time.Time `json:"fim_plano"`
}

// StudentService handles aluno use-cases including the delinquency query.
type StudentService struct {
	repo      studentRepository
	payments  studentPaymentRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, payments studentPaymentRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, payments: payments, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Create registers a new student. The enrollment date defaults to now when
// the payload omits it.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	matricula := time.Now().UTC()
	if req.DataMatricula != nil {
		matricula = req.DataMatricula.UTC()
	}

	student := &models.Student{
		Nome:             req.Nome,
		Contato:          req.Contato,
		Telefone:         req.Telefone,
		FormaPagamento:   req.FormaPagamento,
		ValorMensalidade: req.ValorMensalidade,
		DataMatricula:    matricula,
		FimPlano:         req.FimPlano,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	if err := s.cache.Invalidate(ctx, cachePatternAlunos); err != nil {
		s.logger.Warn("failed to invalidate student caches", zap.Error(err))
	}

	return student, nil
}

// List returns every registered student.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	var cached []models.Student
	if hit, _ := s.cache.Get(ctx, cacheKeyStudentList, &cached); hit {
		return cached, nil
	}

	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	if students == nil {
		students = []models.Student{}
	}

	if err := s.cache.Set(ctx, cacheKeyStudentList, students, 0); err != nil {
		s.logger.Warn("failed to cache student list", zap.Error(err))
	}

	return students, nil
}

// Status returns a student with its payment history ordered by creation.
func (s *StudentService) Status(ctx context.Context, id string) (*models.StudentStatus, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	payments, err := s.payments.ListByStudent(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payments")
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	return &models.StudentStatus{Student: *student, Pagamentos: payments}, nil
}

// ListDelinquent returns students without any payment on record. The result
// is a derived set, recomputed per query and cached briefly.
func (s *StudentService) ListDelinquent(ctx context.Context) ([]models.Student, error) {
	var cached []models.Student
	if hit, _ := s.cache.Get(ctx, cacheKeyDelinquents, &cached); hit {
		return cached, nil
	}

	students, err := s.repo.ListDelinquent(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list delinquent students")
	}
	if students == nil {
		students = []models.Student{}
	}

	s.metrics.SetDelinquentCount(len(students))

	if err := s.cache.Set(ctx, cacheKeyDelinquents, students, 0); err != nil {
		s.logger.Warn("failed to cache delinquent list", zap.Error(err))
	}

	return students, nil
}
