// Package read реализует HTTP-обработчик чтения отзыва.
package read

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
	Read(ctx context.Context, id int) (*models.Review, error)
}

// Handler обрабатывает HTTP-запросы чтения отзыва.
type Handler struct {
	log     *slog.Logger
	reviews Service
	env     string
}

func New(log *slog.Logger, reviews Service, env string) *Handler {
	return &Handler{log: log, reviews: reviews, env: env}
}

// ServeHTTP godoc
// @Summary Чтение отзыва
// @Description Возвращает отзыв по ID.
// @Tags Reviews
// @Produce  json
// @Param tourID path int true "ID тура"
// @Param id path int true "ID отзыва"
// @Success 200 {object} response.Envelope "Отзыв"
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден"
// @Router /tours/{tourID}/reviews/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid review id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Fail("invalid review id"))
		return
	}

	review, err := h.reviews.Read(r.Context(), id)
	if err != nil {
		log.Error("failed to read review", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	render.JSON(w, r, response.Success(map[string]any{"review": review}))
}
