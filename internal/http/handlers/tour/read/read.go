// Package read реализует HTTP-обработчик чтения одного тура.
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

// Service описывает интерфейс бизнес-логики туров.
type Service interface {
	Read(ctx context.Context, id int) (*models.Tour, error)
}

// Handler обрабатывает HTTP-запросы чтения тура.
type Handler struct {
	log   *slog.Logger
	tours Service
	env   string
}

func New(log *slog.Logger, tours Service, env string) *Handler {
	return &Handler{log: log, tours: tours, env: env}
}

// ServeHTTP godoc
// @Summary Чтение тура
// @Description Возвращает тур по ID.
// @Tags Tours
// @Produce  json
// @Param id path int true "ID тура"
// @Success 200 {object} response.Envelope "Тур"
// @Failure 404 {object} response.ErrorResponse "Тур не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /tours/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.read"

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

	tour, err := h.tours.Read(r.Context(), id)
	if err != nil {
		log.Error("failed to read tour", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	render.JSON(w, r, response.Success(map[string]any{"tour": tour}))
}
