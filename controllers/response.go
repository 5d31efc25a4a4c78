package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope:
// {"status": bool, "message": string, "data"?: ...}.

func respond(c *gin.Context, code int, message string, data interface{}) {
	body := gin.H{"status": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": false, "message": message})
}

// failInternal reports an unexpected store or collaborator failure,
// echoing the underlying error message.
func failInternal(c *gin.Context, err error) {
	fail(c, http.StatusInternalServerError, err.Error())
}
