// Package natours предоставляет маршруты для основного приложения.
package natours

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/maroungit7573/natours/internal/config"
	"github.com/maroungit7573/natours/internal/http/handlers/auth/forgotpassword"
	"github.com/maroungit7573/natours/internal/http/handlers/auth/login"
	"github.com/maroungit7573/natours/internal/http/handlers/auth/logout"
	"github.com/maroungit7573/natours/internal/http/handlers/auth/resetpassword"
	"github.com/maroungit7573/natours/internal/http/handlers/auth/signup"
	"github.com/maroungit7573/natours/internal/http/handlers/auth/updatepassword"
	"github.com/maroungit7573/natours/internal/http/handlers/health"
	reviewcreate "github.com/maroungit7573/natours/internal/http/handlers/review/create"
	reviewlist "github.com/maroungit7573/natours/internal/http/handlers/review/list"
	reviewread "github.com/maroungit7573/natours/internal/http/handlers/review/read"
	reviewremove "github.com/maroungit7573/natours/internal/http/handlers/review/remove"
	reviewupdate "github.com/maroungit7573/natours/internal/http/handlers/review/update"
	tourcreate "github.com/maroungit7573/natours/internal/http/handlers/tour/create"
	tourlist "github.com/maroungit7573/natours/internal/http/handlers/tour/list"
	tourread "github.com/maroungit7573/natours/internal/http/handlers/tour/read"
	tourremove "github.com/maroungit7573/natours/internal/http/handlers/tour/remove"
	tourupdate "github.com/maroungit7573/natours/internal/http/handlers/tour/update"
	"github.com/maroungit7573/natours/internal/http/middlewarectx"
	"github.com/maroungit7573/natours/internal/models"
	authservice "github.com/maroungit7573/natours/internal/services/auth"
	reviewservice "github.com/maroungit7573/natours/internal/services/review"
	tourservice "github.com/maroungit7573/natours/internal/services/tour"
	"github.com/maroungit7573/natours/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	db *repository.Storage, authService *authservice.Service,
	tourService *tourservice.Service, reviewService *reviewservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	cookieTTL := cfg.CookieTTL
	secure := cfg.IsProd()
	env := cfg.Env

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Открытые конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RateLimitMiddleware(logger, 10, 30))
				r.Post("/signup", signup.New(logger, authService, cookieTTL, secure, env).ServeHTTP)
				r.Post("/login", login.New(logger, authService, cookieTTL, secure, env).ServeHTTP)
				r.Get("/logout", logout.New(logger).ServeHTTP)
				r.Post("/forgotPassword", forgotpassword.New(logger, authService, env).ServeHTTP)
				r.Patch("/resetPassword/{token}", resetpassword.New(logger, authService, cookieTTL, secure, env).ServeHTTP)
			})

			// Группа с обязательной аутентификацией
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.Protect(authService, logger, env))
				r.Patch("/updateMyPassword", updatepassword.New(logger, authService, cookieTTL, secure, env).ServeHTTP)
			})
		})

		r.Route("/tours", func(r chi.Router) {
			// Чтение каталога открыто, опциональная аутентификация
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.MaybeAuth(authService, logger))
				r.Get("/", tourlist.New(logger, tourService, env).ServeHTTP)
				r.Get("/{id}", tourread.New(logger, tourService, env).ServeHTTP)
				r.Get("/{tourID}/reviews", reviewlist.New(logger, reviewService, env).ServeHTTP)
				r.Get("/{tourID}/reviews/{id}", reviewread.New(logger, reviewService, env).ServeHTTP)
			})

			// Изменение каталога только для admin и lead-guide
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.Protect(authService, logger, env))
				r.Use(middlewarectx.RequireRoles(logger, env, models.RoleAdmin, models.RoleLeadGuide))
				r.Post("/", tourcreate.New(logger, tourService, env).ServeHTTP)
				r.Patch("/{id}", tourupdate.New(logger, tourService, env).ServeHTTP)
				r.Delete("/{id}", tourremove.New(logger, tourService, env).ServeHTTP)
			})

			// Отзывы оставляют только обычные пользователи
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.Protect(authService, logger, env))
				r.Use(middlewarectx.RequireRoles(logger, env, models.RoleUser))
				r.Post("/{tourID}/reviews", reviewcreate.New(logger, reviewService, env).ServeHTTP)
			})

			// Свой отзыв правит автор, admin может править любой
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.Protect(authService, logger, env))
				r.Use(middlewarectx.RequireRoles(logger, env, models.RoleUser, models.RoleAdmin))
				r.Patch("/{tourID}/reviews/{id}", reviewupdate.New(logger, reviewService, env).ServeHTTP)
				r.Delete("/{tourID}/reviews/{id}", reviewremove.New(logger, reviewService, env).ServeHTTP)
			})
		})

		r.Get("/health", health.New(logger, db).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
