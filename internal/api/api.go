// Package api holds the HTTP plumbing shared by the resource handlers:
// request-id propagation, request logging, and the mapping from the domain
// error taxonomy to HTTP responses.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"foodcourier/internal/logger"
	"foodcourier/internal/models"
)

const requestIDKey = "request_id"

// RegisterValidations installs the domain validation tags on gin's binding
// validator. Called once at bootstrap, before any route handles traffic.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("driverstatus", func(fl validator.FieldLevel) bool {
		return models.ValidDriverStatus(fl.Field().String())
	})
}

// RequestLogger tags every request with a generated request id and logs it
// on completion with method, path, status and latency.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := logger.GenerateRequestID()
		c.Set(requestIDKey, requestID)

		start := time.Now()
		c.Next()

		log.Debug("http_request", "Request handled", requestID, map[string]interface{}{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
	}
}

// RequestID returns the request id the logging middleware attached.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Error writes the HTTP response for err. Domain errors map to 400-class
// statuses with their message and details; anything else is a 500 with the
// cause withheld from the client.
func Error(c *gin.Context, err error) {
	respond(c, err, http.StatusBadRequest)
}

// ErrorDuplicateForbidden is Error with DuplicateItem mapped to 403 instead
// of 400, which is how update endpoints report uniqueness conflicts.
func ErrorDuplicateForbidden(c *gin.Context, err error) {
	respond(c, err, http.StatusForbidden)
}

func respond(c *gin.Context, err error, duplicateStatus int) {
	appErr, ok := models.AsAppError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	status := http.StatusBadRequest
	switch appErr.Code {
	case models.CodeNotFound:
		status = http.StatusNotFound
	case models.CodeDuplicateItem:
		status = duplicateStatus
	}
	c.JSON(status, gin.H{"message": appErr.Message, "details": appErr.Details})
}

// BindError reports a payload that failed binding or validation, before any
// business logic ran.
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Invalid request payload",
		"details": map[string]interface{}{"error": err.Error()},
	})
}
