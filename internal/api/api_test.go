package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodcourier/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respondTo(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestError_CompositionErrorsAre400(t *testing.T) {
	w, body := respondTo(t, func(c *gin.Context) {
		Error(c, models.ErrAddOnNotFound("Extra mayo"))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A matching addon could not be found", body["message"])
	assert.Equal(t, map[string]interface{}{"name": "Extra mayo"}, body["details"])
}

func TestError_NotFoundIs404(t *testing.T) {
	w, _ := respondTo(t, func(c *gin.Context) {
		Error(c, models.ErrNotFound("order", 7))
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestError_DuplicateItemIs400ByDefault(t *testing.T) {
	w, _ := respondTo(t, func(c *gin.Context) {
		Error(c, models.ErrDuplicateItem(nil))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorDuplicateForbidden_DuplicateItemIs403(t *testing.T) {
	w, _ := respondTo(t, func(c *gin.Context) {
		ErrorDuplicateForbidden(c, models.ErrDuplicateItem(nil))
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestErrorDuplicateForbidden_NotFoundStays404(t *testing.T) {
	w, _ := respondTo(t, func(c *gin.Context) {
		ErrorDuplicateForbidden(c, models.ErrNotFound("addon", 3))
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestError_UnknownErrorIs500AndWithheld(t *testing.T) {
	w, body := respondTo(t, func(c *gin.Context) {
		Error(c, errors.New("pq: connection reset"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestBindError_Is400WithCause(t *testing.T) {
	w, body := respondTo(t, func(c *gin.Context) {
		BindError(c, errors.New("missing required field"))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request payload", body["message"])
}
