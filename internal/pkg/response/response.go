package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var log = zap.NewNop()

// SetLogger wires the zap logger used for server-side error reporting.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// OK sends a 200 response with the payload as-is.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message sends a 200 response with a {"message": ...} body.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// BadRequest sends a 400 error. Used for both validation failures and
// uniqueness conflicts.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}

// NotFound sends a 404 error.
func NotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": message})
}

// MethodNotAllowed sends a 405 error.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}

// InternalError logs the underlying error and sends a 500 with a generic
// message; the cause never reaches the client.
func InternalError(c *gin.Context, err error, message string) {
	log.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message})
}
