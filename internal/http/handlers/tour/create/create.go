// Package create реализует HTTP-обработчик создания тура.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/maroungit7573/natours/internal/http/response"
	"github.com/maroungit7573/natours/internal/lib/sl"
	"github.com/maroungit7573/natours/internal/models"
)

// Request — структура входных данных для создания тура.
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
	Create(ctx context.Context, tour models.Tour) (*models.Tour, error)
}

// Handler обрабатывает HTTP-запросы создания тура.
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
// @Summary Создание тура
// @Description Добавляет новый тур в каталог. Доступно ролям admin и lead-guide.
// @Tags Tours
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные тура"
// @Success 201 {object} response.Envelope "Тур создан"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /tours [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	tour, err := h.tours.Create(r.Context(), models.Tour{
		Name:         req.Name,
		Duration:     req.Duration,
		MaxGroupSize: req.MaxGroupSize,
		Difficulty:   req.Difficulty,
		Price:        req.Price,
		Summary:      req.Summary,
		Description:  req.Description,
	})
	if err != nil {
		log.Error("failed to create tour", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	log.Info("tour created", slog.Int("id", tour.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.Success(map[string]any{"tour": tour}))
}
