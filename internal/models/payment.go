package models

import "time"

// Payment records a pagamento made by a student for a billing period.
// Payments are immutable once created.
type Payment struct {
	ID            string    `db:"id" json:"id"`
	AlunoID       string    `db:"aluno_id" json:"aluno_id"`
	DataPagamento time.Time `db:"data_pagamento" json:"data_pagamento"`
	Periodo       string    `db:"periodo" json:"periodo"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
