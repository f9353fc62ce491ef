// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/1234620/Travel-Based-Chatbot/internal/amadeus"
	"github.com/1234620/Travel-Based-Chatbot/internal/booking"
)

const maxUserIDLen = 64

type errorResponse struct {
	Error string `json:"error"`
}

// isValidUserID mirrors what POST /chat accepts for user_id: any non-blank
// string of at most maxUserIDLen characters.
func isValidUserID(v string) bool {
	return strings.TrimSpace(v) != "" && utf8.RuneCountInString(v) <= maxUserIDLen
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeUpstreamError maps provider client failures to gateway-style statuses.
func writeUpstreamError(c *gin.Context, err error) {
	var apiErr *amadeus.APIError
	switch {
	case errors.Is(err, amadeus.ErrMissingCredentials), errors.Is(err, booking.ErrMissingAPIKey):
		writeError(c, http.StatusServiceUnavailable, "provider not configured")
	case errors.Is(err, booking.ErrMissingDestID):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, "provider timed out")
	case errors.As(err, &apiErr):
		writeError(c, http.StatusBadGateway, apiErr.Error())
	default:
		writeError(c, http.StatusInternalServerError, err.Error())
	}
}
