/*
Package store is the durable persistence layer for users and messages.

It is the single source of truth for message delivery: a message only exists
once a row is written here, and live push is attempted strictly afterwards.
All queries run against the pgx connection pool.
*/
package store

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = pgx.ErrNoRows

// Store executes all database queries.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// User is a registered account row.
type User struct {
	ID           pgtype.UUID
	Email        string
	FullName     string
	Bio          string
	AvatarKey    string
	PasswordHash string
	CreatedAt    time.Time
}

// Message is a single direct message row. Immutable except for Seen, which
// only ever transitions false to true.
type Message struct {
	ID         pgtype.UUID
	SenderID   pgtype.UUID
	ReceiverID pgtype.UUID
	Body       string
	ImageKey   string
	Seen       bool
	CreatedAt  time.Time
}
