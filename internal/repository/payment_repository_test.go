package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmendes/academia-api/internal/models"
)

func TestPaymentCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectExec("INSERT INTO pagamentos").WillReturnResult(sqlmock.NewResult(1, 1))

	payment := &models.Payment{AlunoID: "a1", DataPagamento: time.Now().UTC(), Periodo: "2026-08"}
	err := repo.Create(context.Background(), payment)
	require.NoError(t, err)
	assert.NotEmpty(t, payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentListByStudent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "aluno_id", "data_pagamento", "periodo", "created_at"}).
		AddRow("p1", "a1", now, "2026-07", now).
		AddRow("p2", "a1", now, "2026-08", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, aluno_id, data_pagamento, periodo, created_at FROM pagamentos WHERE aluno_id = $1 ORDER BY created_at")).
		WithArgs("a1").
		WillReturnRows(rows)

	payments, err := repo.ListByStudent(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "2026-07", payments[0].Periodo)
	assert.NoError(t, mock.ExpectationsWereMet())
}
