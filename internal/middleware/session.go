package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront-console/internal/session"
	myErr "storefront-console/internal/types/errors"
)

type SessKey string

var sessKey SessKey = "sessionKey"

// SessionVar - имя переменной маршрута с id консольной сессии
const SessionVar = "sid"

// Session достает консольную сессию по {sid} из маршрута, продлевает ее
// и кладет в контекст запроса.
func Session(sm session.SessionRepo, logger *zap.SugaredLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := mux.Vars(r)[SessionVar]
			if sid == "" {
				// маршрут без сессии
				next.ServeHTTP(w, r)
				return
			}

			sess, err := sm.GetSession(r.Context(), sid)
			if err != nil {
				// 404 - нет сессии, 410 - истекла, остальное - проблемы Redis
				myErr.SendErrorTo(w, err, myErr.StatusCode(err), logger)
				return
			}

			if err = sm.ExtendSession(r.Context(), sid); err != nil {
				logger.Warnf("failed to extend session %s: %v", sid, err)
			}

			ctx := ContextWithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ContextWithSession(ctx context.Context, s *session.Session) context.Context {
	// создаем новый контекст с нашим ключом и сессией
	return context.WithValue(ctx, sessKey, s)
}

func GetSessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessKey).(*session.Session)
	return sess, ok
}
