// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/artstylelab/backend/internal/i18n"
	"github.com/artstylelab/backend/internal/services"
	"github.com/artstylelab/backend/internal/utils"
)

// callerID resolves the acting user: a verified token identity wins, then
// whatever id the client asserted in the request. Returns "" when neither is
// present.
func callerID(c *gin.Context, asserted ...string) string {
	if id, ok := utils.GetUserIDFromContext(c); ok {
		return id
	}
	for _, id := range asserted {
		if id != "" {
			return id
		}
	}
	return ""
}

// respondError maps a service error onto the response envelope, translating
// its message key for the caller's locale. Anything that is not a service
// error is logged and reported as an internal error.
func respondError(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		lang := utils.GetLangFromContext(c)
		utils.ErrorResponse(c, svcErr.Status, svcErr.Code, i18n.T(lang, svcErr.Key), nil)
		return
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("Unhandled service error")
	utils.InternalErrorResponse(c, "")
}
