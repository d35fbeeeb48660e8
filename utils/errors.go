package utils

import (
	"log"
	"net/http"

	"flatly-backend/services"

	"github.com/gin-gonic/gin"
)

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case services.IsNotFound(err):
		return http.StatusNotFound
	case services.IsValidation(err):
		return http.StatusBadRequest
	case IsForeignKeyViolation(err), IsDuplicateKey(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err in the error envelope. Internal errors are logged
// and answered with a generic message.
func RespondError(c *gin.Context, err error) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		JSONError(c, code, "internal server error")
		return
	}
	JSONError(c, code, err.Error())
}
