package controllers

import (
	"log/slog"
	"net/http"

	"seapass-backend/models"
	"seapass-backend/utils"

	"github.com/gin-gonic/gin"
)

// writeStatus maps a failed write onto an HTTP status. Constraint violations
// are the caller's fault (bad usuario_id, duplicate email) so they are 400.
func writeStatus(err error) int {
	switch {
	case models.IsValidation(err), models.IsQuery(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// readStatus maps a failed read; reads take no input, so any failure is ours.
func readStatus(err error) int {
	if models.IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError surfaces the underlying store text as "erro".
func respondError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(), "status", status, "error", err)
	} else {
		slog.InfoContext(c.Request.Context(), "request rejected",
			"path", c.FullPath(), "status", status, "error", err)
	}
	utils.JSONError(c, status, err.Error())
}

func invalidJSON(err error) error {
	return models.NewValidationError("JSON inválido: " + err.Error())
}
