package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONErrorDetail carries machine-readable detail next to the message, e.g.
// the conflicting days of an unavailable range.
func JSONErrorDetail(c *gin.Context, code int, message string, detail interface{}) {
	c.JSON(code, gin.H{"success": false, "error": message, "detail": detail})
}
