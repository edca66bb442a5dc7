package handlers

import (
	"net/http"

	"campuswell/internal/services"

	"github.com/gin-gonic/gin"
)

// OK writes the success envelope with any extra fields merged in.
func OK(c *gin.Context, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	obj["success"] = true
	c.JSON(http.StatusOK, obj)
}

// Fail maps a service error onto its HTTP status and writes the failure
// envelope. Internal errors are not echoed to the client.
func Fail(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal error"
	}
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// FailMsg writes a failure envelope with an explicit status and message.
func FailMsg(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}
