package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/maroungit7573/natours/internal/models"
)

// pgUniqueViolation — код ошибки PostgreSQL для нарушения уникальности.
const pgUniqueViolation = "23505"

// CreateUser сохраняет нового пользователя и возвращает его UID.
// Дубликат email возвращает ErrEmailTaken.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (name, email, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return "", fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// userColumns — колонки обычной выборки пользователя. Хэш пароля сюда
// не входит: он выбирается отдельным списком только там, где нужен
// для проверки пароля.
const userColumns = `uid, name, email, role, password_changed_at,
			      password_reset_token, password_reset_expires, active, created_at`

func scanUser(row *sql.Row, includeHash bool) (*models.User, error) {
	u := &models.User{}
	var passwordChangedAt, resetExpires sql.NullTime
	var resetToken sql.NullString

	dest := []any{&u.UID, &u.Name, &u.Email, &u.Role, &passwordChangedAt,
		&resetToken, &resetExpires, &u.Active, &u.CreatedAt}
	if includeHash {
		dest = append(dest, &u.PasswordHash)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if passwordChangedAt.Valid {
		u.PasswordChangedAt = &passwordChangedAt.Time
	}
	if resetToken.Valid {
		u.PasswordResetToken = &resetToken.String
	}
	if resetExpires.Valid {
		u.PasswordResetExpires = &resetExpires.Time
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email. Колонка password_hash
// выбирается только при includeHash=true (проверка пароля при логине).
func (s *Storage) GetUserByEmail(ctx context.Context, email string, includeHash bool) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	columns := userColumns
	if includeHash {
		columns += ", password_hash"
	}
	query := `SELECT ` + columns + `
			  FROM users
			  WHERE email = $1 AND active`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email), includeHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByUID возвращает пользователя по его UID.
func (s *Storage) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid = $1 AND active`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, uid), false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByUIDWithPassword возвращает пользователя с хэшем пароля.
// Используется потоком смены пароля для проверки текущего пароля.
func (s *Storage) GetUserByUIDWithPassword(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUserByUIDWithPassword"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `, password_hash
			  FROM users
			  WHERE uid = $1 AND active`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, uid), true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByResetToken возвращает пользователя по хэшу токена сброса.
// Истёкшие токены не находятся: условие по password_reset_expires
// входит в сам запрос, так что просроченный токен неотличим от
// несуществующего.
func (s *Storage) GetUserByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	const op = "storage.GetUserByResetToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE password_reset_token = $1
			    AND password_reset_expires > now()
			    AND active`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, tokenHash), false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// SetResetToken сохраняет хэш токена сброса и срок его действия.
func (s *Storage) SetResetToken(ctx context.Context, uid, tokenHash string, expires time.Time) error {
	const op = "storage.SetResetToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_reset_token = $1,
			      password_reset_expires = $2
			  WHERE uid = $3`
	if _, err := s.DB.ExecContext(ctx, query, tokenHash, expires, uid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ClearResetToken очищает поля токена сброса. Вызывается после
// использования токена и как компенсация при сбое отправки письма.
func (s *Storage) ClearResetToken(ctx context.Context, uid string) error {
	const op = "storage.ClearResetToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_reset_token = NULL,
			      password_reset_expires = NULL
			  WHERE uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, uid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatePassword записывает новый хэш пароля, фиксирует момент смены
// и очищает поля токена сброса. password_changed_at ставится на секунду
// назад, чтобы токен, выданный в ту же секунду, не считался устаревшим.
func (s *Storage) UpdatePassword(ctx context.Context, uid, passwordHash string) error {
	const op = "storage.UpdatePassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1,
			      password_changed_at = now() - interval '1 second',
			      password_reset_token = NULL,
			      password_reset_expires = NULL
			  WHERE uid = $2`
	res, err := s.DB.ExecContext(ctx, query, passwordHash, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}
