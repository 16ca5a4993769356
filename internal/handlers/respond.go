// Package handlers maps HTTP requests to the auth and task services and
// renders every outcome into the uniform response envelope
// {success, message, data|error_message}.
package handlers

import (
	"taskhub/backend/internal/models"

	"github.com/gin-gonic/gin"
)

func success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

func successMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func failure(c *gin.Context, status int, message string, errorMessage any) {
	body := gin.H{"success": false, "message": message}
	if errorMessage != nil {
		body["error_message"] = errorMessage
	}
	c.JSON(status, body)
}

// currentUser returns the authenticated caller placed in the context by the
// auth middleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// taskList guards against nil slices so empty results serialize as [].
func taskList(tasks []models.Task) []models.Task {
	if tasks == nil {
		return []models.Task{}
	}
	return tasks
}
