package models

import "time"

// Student represents a registered aluno. Students are created once and never
// deleted; the record only grows payments over time.
type Student struct {
	ID               string     `db:"id" json:"id"`
	Nome             string     `db:"nome" json:"nome"`
	Contato          string     `db:"contato" json:"contato"`
	Telefone         string     `db:"telefone" json:"telefone"`
	FormaPagamento   string     `db:"forma_pagamento" json:"forma_pagamento"`
	ValorMensalidade float64    `db:"valor_mensalidade" json:"valor_mensalidade"`
	DataMatricula    time.Time  `db:"data_matricula" json:"data_matricula"`
	FimPlano         *time.Time `db:"fim_plano" json:"fim_plano,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// StudentStatus is a student together with its payment history, ordered by
// creation.
type StudentStatus struct {
	Student
	Pagamentos []Payment `json:"pagamentos"`
}
