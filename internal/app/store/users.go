package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `
INSERT INTO users (email, full_name, bio, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING id, email, full_name, bio, avatar_key, password_hash, created_at
`

// CreateUserParams holds the fields required to register an account.
type CreateUserParams struct {
	Email        string
	FullName     string
	Bio          string
	PasswordHash string
}

// CreateUser inserts a new account. A unique violation on email is returned
// as-is for the caller to classify.
func (s *Store) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := s.pool.QueryRow(ctx, createUser, arg.Email, arg.FullName, arg.Bio, arg.PasswordHash)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Bio, &u.AvatarKey, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

const getUserByEmail = `
SELECT id, email, full_name, bio, avatar_key, password_hash, created_at
FROM users
WHERE email = $1
`

// GetUserByEmail fetches an account by its unique email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.pool.QueryRow(ctx, getUserByEmail, email)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Bio, &u.AvatarKey, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

const getUserByID = `
SELECT id, email, full_name, bio, avatar_key, password_hash, created_at
FROM users
WHERE id = $1
`

// GetUserByID fetches an account by id.
func (s *Store) GetUserByID(ctx context.Context, id pgtype.UUID) (User, error) {
	row := s.pool.QueryRow(ctx, getUserByID, id)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Bio, &u.AvatarKey, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

const listUsersExcept = `
SELECT id, email, full_name, bio, avatar_key, password_hash, created_at
FROM users
WHERE id <> $1
ORDER BY full_name, id
`

// ListUsersExcept returns every account other than the given one, for the
// roster view.
func (s *Store) ListUsersExcept(ctx context.Context, id pgtype.UUID) ([]User, error) {
	rows, err := s.pool.Query(ctx, listUsersExcept, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Bio, &u.AvatarKey, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const updateUserProfile = `
UPDATE users
SET full_name  = COALESCE(NULLIF($2::text, ''), full_name),
    bio        = CASE WHEN $3::boolean THEN $4::text ELSE bio END,
    avatar_key = COALESCE(NULLIF($5::text, ''), avatar_key)
WHERE id = $1
RETURNING id, email, full_name, bio, avatar_key, password_hash, created_at
`

// UpdateUserProfileParams carries the optional profile fields. Empty FullName
// and AvatarKey leave the stored values untouched; Bio is only written when
// SetBio is true, since an empty bio is a valid value.
type UpdateUserProfileParams struct {
	ID        pgtype.UUID
	FullName  string
	SetBio    bool
	Bio       string
	AvatarKey string
}

// UpdateUserProfile applies a partial profile update and returns the new row.
func (s *Store) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (User, error) {
	row := s.pool.QueryRow(ctx, updateUserProfile, arg.ID, arg.FullName, arg.SetBio, arg.Bio, arg.AvatarKey)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Bio, &u.AvatarKey, &u.PasswordHash, &u.CreatedAt)
	return u, err
}
