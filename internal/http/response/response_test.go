package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maroungit7573/natours/internal/config"
	"github.com/maroungit7573/natours/internal/lib/apperr"
)

func TestEnvelopes(t *testing.T) {
	env := SuccessWithToken("tok", map[string]string{"name": "Lena"})
	assert.Equal(t, StatusSuccess, env.Status)
	assert.Equal(t, "tok", env.Token)

	assert.Equal(t, StatusFail, Fail("nope").Status)
	assert.Equal(t, StatusError, Error("boom").Status)
}

func TestRenderError_ClientError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	RenderError(rec, req, config.EnvProd, apperr.New(apperr.KindAuthentication, "Incorrect email or password!").
		WithStatus(http.StatusBadRequest))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":"fail","message":"Incorrect email or password!"}`, rec.Body.String())
}

func TestRenderError_InternalHidesDetailsInProd(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	RenderError(rec, req, config.EnvProd, assert.AnError)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"something went wrong"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestRenderError_InternalShowsCauseOutsideProd(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	RenderError(rec, req, config.EnvLocal, assert.AnError)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "something went wrong")
	assert.Contains(t, rec.Body.String(), assert.AnError.Error())
}

func TestRenderError_OperationalCauseHiddenInProd(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	wrapped := apperr.Wrap(apperr.KindDependency,
		"there was an error sending the email, try again later", assert.AnError)
	RenderError(rec, req, config.EnvProd, wrapped)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t,
		`{"status":"error","message":"there was an error sending the email, try again later"}`,
		rec.Body.String())
}
