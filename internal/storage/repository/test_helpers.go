package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, name, email, passwordHash, role string) string {
	t.Helper()
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4) RETURNING uid`,
		name, email, passwordHash, role).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateUserWithResetToken создает пользователя с токеном сброса пароля
func (f *TestDataFactory) CreateUserWithResetToken(t *testing.T, name, email, passwordHash,
	tokenHash string, expires time.Time) string {
	t.Helper()
	uid := f.CreateUser(t, name, email, passwordHash, "user")
	_, err := f.storage.DB.Exec(`UPDATE users
		SET password_reset_token = $1, password_reset_expires = $2
		WHERE uid = $3`,
		tokenHash, expires, uid)
	require.NoError(t, err)
	return uid
}

// CreateTour создает тестовый тур и возвращает его ID
func (f *TestDataFactory) CreateTour(t *testing.T, name, difficulty string, price float64) int {
	t.Helper()
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO tours
		(name, duration, max_group_size, difficulty, price, summary)
		VALUES ($1, 5, 10, $2, $3, 'test summary') RETURNING id`,
		name, difficulty, price).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateReview создает тестовый отзыв и возвращает его ID
func (f *TestDataFactory) CreateReview(t *testing.T, tourID int, userUID, text string, rating int) int {
	t.Helper()
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO reviews (review, rating, tour_id, user_uid)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		text, rating, tourID, userUID).Scan(&id)
	require.NoError(t, err)
	return id
}
