package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/thegoldstar/goldstar-server/internal/access"
	"github.com/thegoldstar/goldstar-server/internal/http/response"
)

// GuardMiddleware применяет цепочку проверок доступа экрана screenPath
// к загруженному профилю. Отказ возвращает 403 с путем для перехода,
// незагруженный профиль — 503.
func GuardMiddleware(screenPath string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "access.GuardMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			session := access.Session{}
			if uid, ok := r.Context().Value(UserUID).(string); ok && uid != "" {
				session.Authenticated = true
			}
			if user, ok := UserFromContext(r.Context()); ok {
				session.User = user
			}

			decision := access.Decide(session, screenPath)
			switch decision.Kind {
			case access.KindRedirect:
				msg := "access denied"
				if decision.Path == access.PathPayment {
					msg = "subscription required"
				}
				log.Info("access denied",
					slog.String("screen", screenPath),
					slog.String("redirect", decision.Path))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Denied(msg, decision.Path))
				return
			case access.KindPending:
				log.Info("profile not loaded yet", slog.String("screen", screenPath))
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("profile temporarily unavailable"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
