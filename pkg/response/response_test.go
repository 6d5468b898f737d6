package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appErrors "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/errors"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	return c, rec
}

func TestSuccess(t *testing.T) {
	c, rec := newTestContext(t)
	Success(c, http.StatusOK, gin.H{"hello": "world"})

	require.Equal(t, http.StatusOK, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Nil(t, body.Error)
}

func TestSuccessWithWarnings(t *testing.T) {
	c, rec := newTestContext(t)
	SuccessWithWarnings(c, http.StatusCreated, gin.H{"id": "b-1"}, []string{
		"invoice generation failed",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, []string{"invoice generation failed"}, body.Warnings)
}

func TestErrorRendersAppError(t *testing.T) {
	c, rec := newTestContext(t)
	Error(c, appErrors.ErrWriteRejected)

	require.Equal(t, http.StatusConflict, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.Equal(t, appErrors.ErrWriteRejected.Code, body.Error.Code)
}

func TestErrorDefaultsToInternal(t *testing.T) {
	c, rec := newTestContext(t)
	Error(c, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
