// Package profile реализует HTTP-обработчик чтения профиля бизнеса.
package profile

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/thegoldstar/goldstar-server/internal/http/middlewarectx"
	"github.com/thegoldstar/goldstar-server/internal/http/response"
)

// Handler возвращает профиль текущего бизнеса.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Профиль бизнеса
// @Description Возвращает профиль текущего авторизованного бизнеса.
// @Tags Business
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Профиль бизнеса"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /business/profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.business.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"profile": user,
	}))
}
