package httperr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
)

func TestIsBusinessThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create: %w", httperr.ErrBusiness("time_conflict"))

	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.False(t, httperr.IsBusiness(err, "invalid_state"))
	assert.False(t, httperr.IsBusiness(errors.New("time_conflict"), "time_conflict"))
}

func TestRespondBusinessError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	httperr.Respond(c, httperr.ErrBusinessWith("exceeds_balance", map[string]any{"balance": "45.00"}))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "exceeds_balance", body.Code)
	assert.Equal(t, "45.00", body.Details["balance"])
	assert.Empty(t, c.Errors)
}

func TestRespondUnexpectedError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	httperr.Respond(c, errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
	assert.Len(t, c.Errors, 1)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, httperr.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, httperr.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, httperr.IsUniqueViolation(errors.New("boom")))
}
