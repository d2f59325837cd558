// Package logout реализует HTTP-обработчик выхода из сессии.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/maroungit7573/natours/internal/http/response"
	"github.com/maroungit7573/natours/internal/http/session"
)

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выход из сессии
// @Description Заменяет сессионную cookie короткоживущей заглушкой. Идемпотентен.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Envelope "Выход выполнен"
// @Router /users/logout [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	session.Clear(w)
	log.Info("session cookie cleared")
	render.JSON(w, r, response.Success(nil))
}
