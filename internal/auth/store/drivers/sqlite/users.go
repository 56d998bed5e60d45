package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/vidora-app/vidora/internal/auth/domain"
	"github.com/vidora-app/vidora/internal/auth/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, email, full_name, avatar, cover_image,
	password_hash, refresh_token, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, username, email, full_name, avatar, cover_image,
			password_hash, refresh_token, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.FullName, u.Avatar, u.CoverImage,
		u.PasswordHash, mapOptionalString(u.RefreshToken), now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateRefreshToken(ctx context.Context, userID string, token *string) error {
	return r.exec(ctx,
		`UPDATE users SET refresh_token = ?, updated_at = ? WHERE id = ?`,
		mapOptionalString(token), formatTime(time.Now()), userID)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return r.exec(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, formatTime(time.Now()), userID)
}

func (r *usersRepo) UpdateAccountDetails(ctx context.Context, userID, fullName, email string) error {
	err := r.exec(ctx,
		`UPDATE users SET full_name = ?, email = ?, updated_at = ? WHERE id = ?`,
		fullName, email, formatTime(time.Now()), userID)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	return r.exec(ctx,
		`UPDATE users SET avatar = ?, updated_at = ? WHERE id = ?`,
		avatarURL, formatTime(time.Now()), userID)
}

func (r *usersRepo) UpdateCoverImage(ctx context.Context, userID, coverURL string) error {
	return r.exec(ctx,
		`UPDATE users SET cover_image = ?, updated_at = ? WHERE id = ?`,
		coverURL, formatTime(time.Now()), userID)
}

// exec runs an update that must touch exactly one row; a missing user
// surfaces as store.ErrNotFound rather than a silent no-op.
func (r *usersRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u                    domain.User
		refresh              sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.Avatar, &u.CoverImage,
		&u.PasswordHash, &refresh, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.RefreshToken = mapNullStringPtr(refresh)
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return u, nil
}
