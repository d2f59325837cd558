// Package list реализует HTTP-обработчик списка отзывов о туре.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/maroungit7573/natours/internal/http/response"
	"github.com/maroungit7573/natours/internal/lib/sl"
	"github.com/maroungit7573/natours/internal/models"
)

// Service описывает интерфейс бизнес-логики отзывов.
type Service interface {
	ListByTour(ctx context.Context, tourID int) ([]*models.Review, error)
}

// Handler обрабатывает HTTP-запросы списка отзывов.
type Handler struct {
	log     *slog.Logger
	reviews Service
	env     string
}

func New(log *slog.Logger, reviews Service, env string) *Handler {
	return &Handler{log: log, reviews: reviews, env: env}
}

// ServeHTTP godoc
// @Summary Список отзывов о туре
// @Description Возвращает отзывы о туре по его ID.
// @Tags Reviews
// @Produce  json
// @Param tourID path int true "ID тура"
// @Success 200 {object} response.Envelope "Список отзывов"
// @Failure 404 {object} response.ErrorResponse "Тур не найден"
// @Router /tours/{tourID}/reviews [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tourID, err := strconv.Atoi(chi.URLParam(r, "tourID"))
	if err != nil {
		log.Error("invalid tour id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Fail("invalid tour id"))
		return
	}

	reviews, err := h.reviews.ListByTour(r.Context(), tourID)
	if err != nil {
		log.Error("failed to list reviews", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	render.JSON(w, r, response.Success(map[string]any{
		"results": len(reviews),
		"reviews": reviews,
	}))
}
