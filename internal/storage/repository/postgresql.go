// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, туров и отзывов. Предоставляет методы создания,
// чтения, обновления и удаления записей, а также операции жизненного
// цикла учётных данных: смену пароля и токены сброса.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки хранилища, различимые бизнес-логикой.
var (
	// ErrUserNotFound — пользователь не найден (или токен сброса истёк).
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken — email уже занят другим пользователем.
	ErrEmailTaken = errors.New("email already taken")
	// ErrTourNotFound — тур не найден.
	ErrTourNotFound = errors.New("tour not found")
	// ErrDuplicateReview — пользователь уже оставил отзыв на этот тур.
	ErrDuplicateReview = errors.New("review already exists")
	// ErrReviewNotFound — отзыв не найден.
	ErrReviewNotFound = errors.New("review not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, турами и отзывами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}
