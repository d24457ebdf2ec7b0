package ginutil

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryInt extracts an integer from query parameters with a default value
func QueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// ParamUint64 extracts a uint64 from path parameters
func ParamUint64(c *gin.Context, key string) (uint64, error) {
	return strconv.ParseUint(c.Param(key), 10, 64)
}

// Page returns 1-based pagination parameters clamped to sane values
func Page(c *gin.Context, defaultLimit int) (page, limit int) {
	page = QueryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit = QueryInt(c, "limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
