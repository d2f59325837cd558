// Package tour содержит бизнес-логику каталога туров с кэшированием
// чтений в Redis.
package tour

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maroungit7573/natours/internal/lib/apperr"
	"github.com/maroungit7573/natours/internal/models"
	"github.com/maroungit7573/natours/internal/storage/repository"
)

// TourRepository описывает контракт для работы с турами в базе данных.
type TourRepository interface {
	CreateTour(ctx context.Context, tour models.Tour) (int, error)
	ReadTour(ctx context.Context, id int) (*models.Tour, error)
	ListTours(ctx context.Context, limit, offset int) ([]*models.Tour, error)
	UpdateTour(ctx context.Context, tour models.Tour, id int) (int, error)
	RemoveTour(ctx context.Context, id int) (int, error)
}

// Cache кэширует туры между запросами на чтение.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

const cacheTTL = time.Hour

type Service struct {
	repo  TourRepository
	cache Cache
	log   *slog.Logger
}

func New(repo TourRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(id int) string {
	return fmt.Sprintf("tour:%d", id)
}

func (s *Service) Create(ctx context.Context, tour models.Tour) (*models.Tour, error) {
	id, err := s.repo.CreateTour(ctx, tour)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new tour", slog.Int("id", id))

	created, err := s.repo.ReadTour(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), created, cacheTTL); err != nil {
		s.log.Warn("failed to cache tour", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	return created, nil
}

// Read возвращает тур, сначала пробуя кэш.
func (s *Service) Read(ctx context.Context, id int) (*models.Tour, error) {
	var result *models.Tour
	found, err := s.cache.Get(cacheKey(id), &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	if found && result != nil {
		return result, nil
	}

	result, err = s.repo.ReadTour(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTourNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "no tour found with that ID")
		}
		return nil, err
	}

	if err := s.cache.Set(cacheKey(id), result, cacheTTL); err != nil {
		s.log.Warn("failed to add tour to cache", slog.String("key", cacheKey(id)),
			slog.Any("err", err))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Tour, error) {
	return s.repo.ListTours(ctx, limit, offset)
}

func (s *Service) Update(ctx context.Context, tour models.Tour, id int) (*models.Tour, error) {
	affected, err := s.repo.UpdateTour(ctx, tour, id)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperr.New(apperr.KindNotFound, "no tour found with that ID")
	}
	s.log.Info("updated tour in storage", slog.Int("id", id))

	updated, err := s.repo.ReadTour(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), updated, cacheTTL); err != nil {
		s.log.Warn("failed to cache tour", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	return updated, nil
}

func (s *Service) Remove(ctx context.Context, id int) error {
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to remove tour from cache", slog.String("key", cacheKey(id)),
			slog.Any("err", err))
	}

	affected, err := s.repo.RemoveTour(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.New(apperr.KindNotFound, "no tour found with that ID")
	}
	return nil
}
