package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/utils"
)

// respondError translates a service error into the JSON error envelope. The
// conflict case deliberately answers 400, matching the registration contract
// where a taken email is a bad request rather than a 409.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, utils.CreateErrorResponse("VALIDATION_ERROR", err.Error()))
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("CONFLICT", err.Error()))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, utils.CreateErrorResponse("UNAUTHORIZED", err.Error()))
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, utils.CreateErrorResponse("FORBIDDEN", err.Error()))
	case errors.Is(err, models.ErrExpiredToken):
		c.JSON(http.StatusUnauthorized, utils.CreateErrorResponse("TOKEN_EXPIRED", "token has expired"))
	case errors.Is(err, models.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, utils.CreateErrorResponse("INVALID_TOKEN", "token validation failed"))
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse("INTERNAL_ERROR", "internal server error"))
	}
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("BAD_REQUEST", message))
}

// parseUUIDParam reads a UUID path parameter, answering 400 itself when the
// value is malformed.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads skip/limit query parameters with sane defaults.
func pagination(c *gin.Context) (int, int, bool) {
	skip, err := utils.GetQueryParamAsInt(c, "skip", 0)
	if err != nil {
		respondBadRequest(c, err.Error())
		return 0, 0, false
	}
	limit, err := utils.GetQueryParamAsInt(c, "limit", 100)
	if err != nil {
		respondBadRequest(c, err.Error())
		return 0, 0, false
	}
	return skip, limit, true
}
