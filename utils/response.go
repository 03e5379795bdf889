package utils

import "github.com/gin-gonic/gin"

// JSONSuccess writes {"success": true, ...fields}.
func JSONSuccess(c *gin.Context, code int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(code, body)
}

// JSONError writes the failure envelope {"success": false, "erro": message}.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "erro": message})
}
