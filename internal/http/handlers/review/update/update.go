// Package update реализует HTTP-обработчик изменения отзыва.
// Свой отзыв правит автор, admin может править любой.
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

	"github.com/maroungit7573/natours/internal/http/middlewarectx"
	"github.com/maroungit7573/natours/internal/http/response"
	"github.com/maroungit7573/natours/internal/lib/sl"
	"github.com/maroungit7573/natours/internal/models"
)

// Request — структура входных данных для изменения отзыва.
type Request struct {
	Review string `json:"review" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

// Service описывает интерфейс бизнес-логики отзывов.
type Service interface {
	Update(ctx context.Context, user *models.User, id int, text string, rating int) (*models.Review, error)
}

// Handler обрабатывает HTTP-запросы изменения отзыва.
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
// @Summary Изменение отзыва
// @Description Меняет текст и оценку отзыва. Автор меняет свой отзыв, admin — любой.
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Param tourID path int true "ID тура"
// @Param id path int true "ID отзыва"
// @Param request body Request true "Новый текст и оценка"
// @Success 200 {object} response.Envelope "Отзыв обновлен"
// @Failure 403 {object} response.ErrorResponse "Чужой отзыв"
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /tours/{tourID}/reviews/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.update"

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

	review, err := h.reviews.Update(r.Context(), user, id, req.Review, req.Rating)
	if err != nil {
		log.Error("failed to update review", sl.Err(err))
		response.RenderError(w, r, h.env, err)
		return
	}

	log.Info("review updated", slog.Int("id", review.ID))
	render.JSON(w, r, response.Success(map[string]any{"review": review}))
}
