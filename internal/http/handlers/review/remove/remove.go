// Package remove реализует HTTP-обработчик удаления отзыва.
// Свой отзыв удаляет автор, admin может удалить любой.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/maroungit7573/natours/internal/http/middlewarectx"
	"github.com/maroungit7573/natours/internal/http/response"
	"github.com/maroungit7573/natours/internal/lib/sl"
	"github.com/maroungit7573/natours/internal/models"
)

// Service описывает интерфейс бизнес-логики отзывов.
type Service interface {
	Remove(ctx context.Context, user *models.User, id int) error
}

// Handler обрабатывает HTTP-запросы удаления отзыва.
type Handler struct {
	log     *slog.Logger
	reviews Service
	env     string
}

func New(log *slog.Logger, reviews Service, env string) *Handler {
	return &Handler{log: log, reviews: reviews, env: env}
}

// ServeHTTP godoc
// @Summary Удаление отзыва
// @Description Удаляет отзыв по ID. Автор удаляет свой отзыв, admin — любой.
// @Tags Reviews
// @Produce  json
// @Param tourID path int true "ID тура"
// @Param id path int true "ID отзыва"
// @Success 204 "Отзыв удален"
// @Failure 403 {object} response.ErrorResponse "Чужой отзыв"
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден"
// @Security BearerAuth
// @Router /tours/{tourID}/reviews/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Fail("you are not logged in, please log in to get access"))
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid review id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Fail("invalid review id"))
		return
	}

	if err := h.reviews.Remove(r.Context(), user, id); err != nil {
		log.Error("failed to remove review", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	log.Info("review removed", slog.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}
