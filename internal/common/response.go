package common

import "github.com/gin-gonic/gin"

// Responses mirror the legacy surface: plain JSON bodies without an
// envelope, errors as {"message": "..."} with a standard status code.

// Message writes a short JSON message body
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// Fail writes an error message body and records the cause for the request log
func Fail(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"message": message})
}

// TotalPages computes ceil(total/limit) for 1-based pagination
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) > 0 {
		pages++
	}
	return pages
}
