// Package list реализует HTTP-обработчик списка туров с пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/maroungit7573/natours/internal/http/response"
	"github.com/maroungit7573/natours/internal/lib/sl"
	"github.com/maroungit7573/natours/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service описывает интерфейс бизнес-логики туров.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.Tour, error)
}

// Handler обрабатывает HTTP-запросы списка туров.
type Handler struct {
	log   *slog.Logger
	tours Service
	env   string
}

func New(log *slog.Logger, tours Service, env string) *Handler {
	return &Handler{log: log, tours: tours, env: env}
}

// ServeHTTP godoc
// @Summary Список туров
// @Description Возвращает список туров с пагинацией через query-параметры limit и offset.
// @Tags Tours
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Envelope "Список туров"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /tours [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= maxLimit {
			limit = v
		}
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}

	tours, err := h.tours.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list tours", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	render.JSON(w, r, response.Success(map[string]any{
		"results": len(tours),
		"tours":   tours,
	}))
}
