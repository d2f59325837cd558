package read_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/maroungit7573/natours/internal/config"
	"github.com/maroungit7573/natours/internal/http/handlers/tour/read"
	"github.com/maroungit7573/natours/internal/lib/apperr"
	"github.com/maroungit7573/natours/internal/models"
)

type TourServiceMock struct {
	mock.Mock
}

func (m *TourServiceMock) Read(ctx context.Context, id int) (*models.Tour, error) {
	args := m.Called(ctx, id)
	tour, _ := args.Get(0).(*models.Tour)
	return tour, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	newRouter := func(svc *TourServiceMock) chi.Router {
		r := chi.NewRouter()
		r.Get("/api/v1/tours/{id}", read.New(log, svc, config.EnvLocal).ServeHTTP)
		return r
	}

	t.Run("success", func(t *testing.T) {
		svc := new(TourServiceMock)
		svc.On("Read", mock.Anything, 7).Return(&models.Tour{ID: 7, Name: "The Forest Hiker"}, nil)

		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tours/7", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "The Forest Hiker")
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(TourServiceMock)
		svc.On("Read", mock.Anything, 42).
			Return(nil, apperr.New(apperr.KindNotFound, "no tour found with that ID"))

		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tours/42", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "no tour found with that ID")
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := new(TourServiceMock)

		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tours/abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Read", mock.Anything, mock.Anything)
	})
}
