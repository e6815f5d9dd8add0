// ABOUTME: Error responses for the HTTP handlers
// ABOUTME: Maps core errors to status codes and the standard response envelope

package handlers

import (
	"net/http"

	coreerrors "newslens-api/core/errors"

	"github.com/gin-gonic/gin"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeError answers with the status StatusCode assigns to err. Soft
// failures map to 200, which never reaches here from the handlers.
func writeError(c *gin.Context, err error) {
	status := coreerrors.StatusCode(err)
	if status == http.StatusOK {
		status = http.StatusInternalServerError
	}

	msg := err.Error()
	if status == http.StatusInternalServerError && !coreerrors.IsFetchKind(err, coreerrors.KindHTTP) {
		msg = "internal server error"
	}

	c.JSON(status, errorResponse{Success: false, Error: msg})
}
