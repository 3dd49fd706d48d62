package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"github.com/wilideparisdenode/bloggerBackend/internal/database"
	"github.com/wilideparisdenode/bloggerBackend/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// Create inserts a new user
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	socialJSON, _ := json.Marshal(user.Social)

	query := `
		INSERT INTO users (id, name, email, password_hash, is_admin, bio, avatar_url, social, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.IsAdmin,
		user.Bio, user.AvatarURL, socialJSON,
		user.CreatedAt, time.Now(),
	)
	return err
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, is_admin, bio, avatar_url, social, created_at, updated_at
		FROM users WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, is_admin, bio, avatar_url, social, created_at, updated_at
		FROM users WHERE LOWER(email) = LOWER($1)
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// EmailExists checks if a user with the given email exists (case-insensitive)
func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))", email).Scan(&exists)
	return exists, err
}

// GetByIDs retrieves multiple users keyed by ID (for response projection)
func (r *userRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	query := `
		SELECT id, name, email, password_hash, is_admin, bio, avatar_url, social, created_at, updated_at
		FROM users WHERE id = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users[user.ID] = user
	}
	return users, rows.Err()
}

// Update writes the mutable profile fields back
func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	socialJSON, _ := json.Marshal(user.Social)

	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, bio = $5, avatar_url = $6, social = $7, updated_at = $8
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash,
		user.Bio, user.AvatarURL, socialJSON, time.Now(),
	)
	return err
}

// Delete removes a user. Authored articles are not touched: their author_id
// keeps pointing at the deleted user.
func (r *userRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

// scanner abstracts sql.Row and sql.Rows for shared scanning
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *userRepo) scanOne(row *sql.Row) (*models.User, error) {
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func scanUser(s scanner) (*models.User, error) {
	var user models.User
	var socialJSON []byte

	err := s.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.IsAdmin,
		&user.Bio, &user.AvatarURL, &socialJSON, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal(socialJSON, &user.Social)
	return &user, nil
}
