package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/maroungit7573/natours/internal/models"
)

// CreateTour добавляет новый тур и возвращает его ID.
func (s *Storage) CreateTour(ctx context.Context, tour models.Tour) (int, error) {
	const op = "storage.CreateTour"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO tours (name, duration, max_group_size, difficulty, price,
			      summary, description)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		tour.Name, tour.Duration, tour.MaxGroupSize, tour.Difficulty, tour.Price,
		tour.Summary, tour.Description).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadTour возвращает тур по ID.
func (s *Storage) ReadTour(ctx context.Context, id int) (*models.Tour, error) {
	const op = "storage.ReadTour"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, duration, max_group_size, difficulty, price,
			      summary, description, ratings_average, ratings_quantity, created_at
			  FROM tours
			  WHERE id = $1`
	t := &models.Tour{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&t.ID, &t.Name, &t.Duration, &t.MaxGroupSize, &t.Difficulty,
		&t.Price, &t.Summary, &t.Description, &t.RatingsAverage, &t.RatingsQuantity,
		&t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrTourNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// ListTours возвращает список туров с пагинацией.
func (s *Storage) ListTours(ctx context.Context, limit, offset int) ([]*models.Tour, error) {
	const op = "storage.ListTours"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, duration, max_group_size, difficulty, price,
			      summary, description, ratings_average, ratings_quantity, created_at
			  FROM tours
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Tour
	for rows.Next() {
		var t models.Tour
		if err = rows.Scan(&t.ID, &t.Name, &t.Duration, &t.MaxGroupSize, &t.Difficulty,
			&t.Price, &t.Summary, &t.Description, &t.RatingsAverage, &t.RatingsQuantity,
			&t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateTour обновляет данные тура по ID и возвращает количество
// обновлённых записей.
func (s *Storage) UpdateTour(ctx context.Context, tour models.Tour, id int) (int, error) {
	const op = "storage.UpdateTour"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE tours
			  SET name = $1, duration = $2, max_group_size = $3, difficulty = $4,
			      price = $5, summary = $6, description = $7
			  WHERE id = $8`
	res, err := s.DB.ExecContext(ctx, query, tour.Name, tour.Duration, tour.MaxGroupSize,
		tour.Difficulty, tour.Price, tour.Summary, tour.Description, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

// RemoveTour удаляет тур по ID и возвращает количество удалённых записей.
func (s *Storage) RemoveTour(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveTour"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM tours WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

// CreateReview добавляет отзыв о туре. Повторный отзыв того же
// пользователя возвращает ErrDuplicateReview.
func (s *Storage) CreateReview(ctx context.Context, review models.Review) (int, error) {
	const op = "storage.CreateReview"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO reviews (review, rating, tour_id, user_uid)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		review.Review, review.Rating, review.TourID, review.UserUID).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, ErrDuplicateReview)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListReviewsByTour возвращает отзывы о туре.
func (s *Storage) ListReviewsByTour(ctx context.Context, tourID int) ([]*models.Review, error) {
	const op = "storage.ListReviewsByTour"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, review, rating, tour_id, user_uid, created_at
			  FROM reviews
			  WHERE tour_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, tourID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Review
	for rows.Next() {
		var r models.Review
		if err = rows.Scan(&r.ID, &r.Review, &r.Rating, &r.TourID, &r.UserUID,
			&r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReadReview возвращает отзыв по ID.
func (s *Storage) ReadReview(ctx context.Context, id int) (*models.Review, error) {
	const op = "storage.ReadReview"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, review, rating, tour_id, user_uid, created_at
			  FROM reviews
			  WHERE id = $1`
	var r models.Review
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Review, &r.Rating,
		&r.TourID, &r.UserUID, &r.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrReviewNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &r, nil
}

// UpdateReview изменяет текст и оценку отзыва. Возвращает число
// затронутых строк: 0 означает, что отзыва с таким ID нет.
func (s *Storage) UpdateReview(ctx context.Context, id int, text string, rating int) (int, error) {
	const op = "storage.UpdateReview"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE reviews
			  SET review = $1, rating = $2
			  WHERE id = $3`
	res, err := s.DB.ExecContext(ctx, query, text, rating, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

// DeleteReview удаляет отзыв. Возвращает число затронутых строк.
func (s *Storage) DeleteReview(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteReview"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}
