// Package create реализует HTTP-обработчик создания отзыва о туре.
// Автор отзыва берётся из контекста аутентификации, а не из тела запроса.
package create

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

	"github.com/maroungit7573/natours/internal/http/middlewarectx"
	"github.com/maroungit7573/natours/internal/http/response"
	"github.com/maroungit7573/natours/internal/lib/sl"
	"github.com/maroungit7573/natours/internal/models"
)

// Request — структура входных данных для создания отзыва.
type Request struct {
	Review string `json:"review" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

// Service описывает интерфейс бизнес-логики отзывов.
type Service interface {
	Create(ctx context.Context, review models.Review) (*models.Review, error)
}

// Handler обрабатывает HTTP-запросы создания отзыва.
type Handler struct {
	log      *slog.Logger
	reviews  Service
	validate *validator.Validate
	env      string
}

func New(log *slog.Logger, reviews Service, env string) *Handler {
	return &Handler{
		log:      log,
		reviews:  reviews,
		validate: validator.New(),
		env:      env,
	}
}

// ServeHTTP godoc
// @Summary Создание отзыва
// @Description Добавляет отзыв текущего пользователя к туру. Доступно роли user.
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Param tourID path int true "ID тура"
// @Param request body Request true "Отзыв и оценка"
// @Success 201 {object} response.Envelope "Отзыв создан"
// @Failure 404 {object} response.ErrorResponse "Тур не найден"
// @Failure 409 {object} response.ErrorResponse "Отзыв уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /tours/{tourID}/reviews [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.create"

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

	tourID, err := strconv.Atoi(chi.URLParam(r, "tourID"))
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

	review, err := h.reviews.Create(r.Context(), models.Review{
		Review:  req.Review,
		Rating:  req.Rating,
		TourID:  tourID,
		UserUID: user.UID,
	})
	if err != nil {
		log.Error("failed to create review", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	log.Info("review created", slog.Int("id", review.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.Success(map[string]any{"review": review}))
}
