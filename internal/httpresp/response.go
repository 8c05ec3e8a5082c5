package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Message wraps a resource payload with the API's message envelope, e.g.
// {"message": "...", "area": {...}}.
func Message(c *gin.Context, status int, message, key string, resource any) {
	body := gin.H{"message": message}
	if key != "" {
		body[key] = resource
	}
	c.JSON(status, body)
}

func Created(c *gin.Context, message, key string, resource any) {
	Message(c, http.StatusCreated, message, key, resource)
}
