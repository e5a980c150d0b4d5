package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// apiError carries an HTTP status alongside a caller-safe message. Handlers
// return it from compute paths; respondError maps it at the boundary so an
// authorization failure is never downgraded to an empty result.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string {
	return e.message
}

func badRequest(message string) *apiError {
	return &apiError{status: http.StatusBadRequest, message: message}
}

func notFound(message string) *apiError {
	return &apiError{status: http.StatusNotFound, message: message}
}

// respondError writes the error envelope. Unexpected store failures are
// logged with full detail and surface as a generic 500.
func (s *Server) respondError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.status, gin.H{"status": "error", "message": apiErr.message})
		return
	}

	s.logger.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
}
