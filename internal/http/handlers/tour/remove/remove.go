// Package remove реализует HTTP-обработчик удаления тура.
package remove

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
)

// Service описывает интерфейс бизнес-логики туров.
type Service interface {
	Remove(ctx context.Context, id int) error
}

// Handler обрабатывает HTTP-запросы удаления тура.
type Handler struct {
	log   *slog.Logger
	tours Service
	env   string
}

func New(log *slog.Logger, tours Service, env string) *Handler {
	return &Handler{log: log, tours: tours, env: env}
}

// ServeHTTP godoc
// @Summary Удаление тура
// @Description Удаляет тур по ID. Доступно ролям admin и lead-guide.
// @Tags Tours
// @Produce  json
// @Param id path int true "ID тура"
// @Success 204 "Тур удален"
// @Failure 404 {object} response.ErrorResponse "Тур не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /tours/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid tour id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Fail("invalid tour id"))
		return
	}

	if err := h.tours.Remove(r.Context(), id); err != nil {
		log.Error("failed to remove tour", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	log.Info("tour removed", slog.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}
