package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wilideparisdenode/bloggerBackend/internal/apperr"
)

// statusOf maps the error taxonomy to HTTP status codes. Duplicate email is
// a 400 in this API rather than a 409.
func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response for err. Internal detail is logged
// but never returned to the caller.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	status := statusOf(err)

	if status >= 500 {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}

	body := gin.H{"error": apperr.MessageOf(err)}
	if details := apperr.DetailsOf(err); details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}
