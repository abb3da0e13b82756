package models

import "time"

// Credential is a login account stored in the usuarios table. Usernames are
// unique; the record is never updated or deleted.
type Credential struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
