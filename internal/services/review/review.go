// Package review содержит бизнес-логику отзывов о турах.
package review

import (
	"context"
	"errors"
	"log/slog"

	"github.com/maroungit7573/natours/internal/lib/apperr"
	"github.com/maroungit7573/natours/internal/models"
	"github.com/maroungit7573/natours/internal/storage/repository"
)

type ReviewRepository interface {
	ReadTour(ctx context.Context, id int) (*models.Tour, error)
	CreateReview(ctx context.Context, review models.Review) (int, error)
	ReadReview(ctx context.Context, id int) (*models.Review, error)
	UpdateReview(ctx context.Context, id int, text string, rating int) (int, error)
	DeleteReview(ctx context.Context, id int) (int, error)
	ListReviewsByTour(ctx context.Context, tourID int) ([]*models.Review, error)
}

type Service struct {
	repo ReviewRepository
	log  *slog.Logger
}

func New(repo ReviewRepository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create добавляет отзыв авторизованного пользователя к существующему туру.
func (s *Service) Create(ctx context.Context, review models.Review) (*models.Review, error) {
	if _, err := s.repo.ReadTour(ctx, review.TourID); err != nil {
		if errors.Is(err, repository.ErrTourNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "no tour found with that ID")
		}
		return nil, err
	}

	id, err := s.repo.CreateReview(ctx, review)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, apperr.New(apperr.KindConflict, "you have already reviewed this tour")
		}
		return nil, err
	}
	s.log.Info("created new review", slog.Int("id", id), slog.Int("tour_id", review.TourID))

	review.ID = id
	return &review, nil
}

// Read возвращает отзыв по ID.
func (s *Service) Read(ctx context.Context, id int) (*models.Review, error) {
	review, err := s.repo.ReadReview(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "no review found with that ID")
		}
		return nil, err
	}
	return review, nil
}

// canModify сообщает, вправе ли пользователь менять отзыв:
// свой отзыв правит автор, admin — любой.
func canModify(user *models.User, review *models.Review) bool {
	return user.Role == models.RoleAdmin || review.UserUID == user.UID
}

// Update меняет текст и оценку существующего отзыва.
func (s *Service) Update(ctx context.Context, user *models.User, id int, text string, rating int) (*models.Review, error) {
	review, err := s.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(user, review) {
		return nil, apperr.New(apperr.KindAuthorization,
			"you do not have permission to perform this action")
	}

	affected, err := s.repo.UpdateReview(ctx, id, text, rating)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperr.New(apperr.KindNotFound, "no review found with that ID")
	}
	s.log.Info("updated review", slog.Int("id", id))

	return s.repo.ReadReview(ctx, id)
}

// Remove удаляет отзыв.
func (s *Service) Remove(ctx context.Context, user *models.User, id int) error {
	review, err := s.Read(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(user, review) {
		return apperr.New(apperr.KindAuthorization,
			"you do not have permission to perform this action")
	}

	affected, err := s.repo.DeleteReview(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.New(apperr.KindNotFound, "no review found with that ID")
	}
	s.log.Info("deleted review", slog.Int("id", id))
	return nil
}

func (s *Service) ListByTour(ctx context.Context, tourID int) ([]*models.Review, error) {
	if _, err := s.repo.ReadTour(ctx, tourID); err != nil {
		if errors.Is(err, repository.ErrTourNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "no tour found with that ID")
		}
		return nil, err
	}
	return s.repo.ListReviewsByTour(ctx, tourID)
}
