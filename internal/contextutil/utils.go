package contextutil

import (
	"context"

	"storefront-console/internal/middleware"
)

// GetSessionIDFromContext извлекает id консольной сессии из контекста
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok || sess == nil {
		return "", false
	}
	return sess.ID, true
}
