package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
)

func TestRespondError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("bad input: %w", models.ErrValidation), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{fmt.Errorf("email taken: %w", models.ErrConflict), http.StatusBadRequest, "CONFLICT"},
		{fmt.Errorf("farm x: %w", models.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("bad creds: %w", models.ErrUnauthorized), http.StatusUnauthorized, "UNAUTHORIZED"},
		{fmt.Errorf("nope: %w", models.ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
		{models.ErrExpiredToken, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{models.ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.Contains(t, w.Body.String(), tc.code, tc.err.Error())
	}
}
