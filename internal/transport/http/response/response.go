package response

import "github.com/gin-gonic/gin"

// The front-end expects flat bodies: errors carry an "error" key and
// informational results a "message" key.

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
