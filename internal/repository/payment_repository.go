package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rmendes/academia-api/internal/models"
)

// PaymentRepository manages persistence for pagamento records.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a new payment record.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO pagamentos (id, aluno_id, data_pagamento, periodo, created_at)
        VALUES (:id, :aluno_id, :data_pagamento, :periodo, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// ListByStudent returns a student's payments ordered by creation.
func (r *PaymentRepository) ListByStudent(ctx context.Context, alunoID string) ([]models.Payment, error) {
	const query = `SELECT id, aluno_id, data_pagamento, periodo, created_at FROM pagamentos WHERE aluno_id = $1 ORDER BY created_at`
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, alunoID); err != nil {
		return nil, fmt.Errorf("list payments by student: %w", err)
	}
	return payments, nil
}
