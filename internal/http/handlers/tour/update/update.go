// Package update реализует HTTP-обработчик обновления тура.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/maroungit7573/natours/internal/http/response"
	"github.com/maroungit7573/natours/internal/lib/sl"
	"github.com/maroungit7573/natours/internal/models"
)

// Request — структура входных данных для обновления тура.
type Request struct {
	Name         string  `json:"name" validate:"required,min=5,max=100"`
	Duration     int     `json:"duration" validate:"required,min=1"`
	MaxGroupSize int     `json:"maxGroupSize" validate:"required,min=1"`
	Difficulty   string  `json:"difficulty" validate:"required,oneof=easy medium difficult"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Summary      string  `json:"summary" validate:"required"`
	Description  string  `json:"description"`
}

// Service описывает интерфейс бизнес-логики туров.
type Service interface {
	Update(ctx context.Context, tour models.Tour, id int) (*models.Tour, error)
}

// Handler обрабатывает HTTP-запросы обновления тура.
type Handler struct {
	log      *slog.Logger
	tours    Service
	validate *validator.Validate
	env      string
}

func New(log *slog.Logger, tours Service, env string) *Handler {
	return &Handler{
		log:      log,
		tours:    tours,
		validate: validator.New(),
		env:      env,
	}
}

// ServeHTTP godoc
// @Summary Обновление тура
// @Description Обновляет данные тура по ID. Доступно ролям admin и lead-guide.
// @Tags Tours
// @Accept  json
// @Produce  json
// @Param id path int true "ID тура"
// @Param request body Request true "Новые данные тура"
// @Success 200 {object} response.Envelope "Тур обновлен"
// @Failure 404 {object} response.ErrorResponse "Тур не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /tours/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.update"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Fail("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	tour, err := h.tours.Update(r.Context(), models.Tour{
		Name:         req.Name,
		Duration:     req.Duration,
		MaxGroupSize: req.MaxGroupSize,
		Difficulty:   req.Difficulty,
		Price:        req.Price,
		Summary:      req.Summary,
		Description:  req.Description,
	}, id)
	if err != nil {
		log.Error("failed to update tour", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	log.Info("tour updated", slog.Int("id", id))
	render.JSON(w, r, response.Success(map[string]any{"tour": tour}))
}
