package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS alunos (
        id UUID PRIMARY KEY,
        nome TEXT NOT NULL,
        contato TEXT NOT NULL,
        telefone TEXT NOT NULL DEFAULT '',
        forma_pagamento TEXT NOT NULL,
        valor_mensalidade NUMERIC(10,2) NOT NULL,
        data_matricula TIMESTAMPTZ NOT NULL,
        fim_plano TIMESTAMPTZ,
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS pagamentos (
        id UUID PRIMARY KEY,
        aluno_id UUID NOT NULL REFERENCES alunos(id),
        data_pagamento TIMESTAMPTZ NOT NULL,
        periodo TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_pagamentos_aluno_id ON pagamentos (aluno_id)`,
	`CREATE TABLE IF NOT EXISTS usuarios (
        id UUID PRIMARY KEY,
        username TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL
    )`,
}

// EnsureSchema creates the alunos, pagamentos and usuarios tables when they do
// not exist yet. Statements are idempotent so this runs on every startup.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
