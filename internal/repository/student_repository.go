package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rmendes/academia-api/internal/models"
)

// StudentRepository manages persistence for aluno records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO alunos (id, nome, contato, telefone, forma_pagamento, valor_mensalidade, data_matricula, fim_plano, created_at, updated_at)
        VALUES (:id, :nome, :contato, :telefone, :forma_pagamento, :valor_mensalidade, :data_matricula, :fim_plano, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// List returns every student in storage order.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, nome, contato, telefone, forma_pagamento, valor_mensalidade, data_matricula, fim_plano, created_at, updated_at FROM alunos ORDER BY created_at`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a single student. sql.ErrNoRows is passed through so the
// service layer can map it to a not-found error.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, nome, contato, telefone, forma_pagamento, valor_mensalidade, data_matricula, fim_plano, created_at, updated_at FROM alunos WHERE id = $1 LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListDelinquent returns students without a single payment on file.
func (r *StudentRepository) ListDelinquent(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT a.id, a.nome, a.contato, a.telefone, a.forma_pagamento, a.valor_mensalidade, a.data_matricula, a.fim_plano, a.created_at, a.updated_at
        FROM alunos a
        WHERE NOT EXISTS (SELECT 1 FROM pagamentos p WHERE p.aluno_id = a.id)
        ORDER BY a.created_at`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list delinquent students: %w", err)
	}
	return students, nil
}
