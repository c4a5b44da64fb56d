package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// subjectKey stores the authenticated token subject in the request context.
const subjectKey = contextKey("subject")

// GetSubjectFromContext returns the subject of the bearer token that authenticated the request.
// It reports false when authentication is disabled or the request was not authenticated.
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	return subjectFromCtx(c.Request.Context())
}

func subjectFromCtx(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}
