// Package business реализует HTTP-обработчик выдачи ссылки QR-кода
// для владельца бизнеса.
package business

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/thegoldstar/goldstar-server/internal/http/middlewarectx"
	"github.com/thegoldstar/goldstar-server/internal/http/response"
)

// Handler выдает ссылку для QR-кода бизнеса.
type Handler struct {
	log           *slog.Logger
	publicBaseURL string
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, publicBaseURL string) *Handler {
	return &Handler{
		log:           log,
		publicBaseURL: publicBaseURL,
	}
}

// ServeHTTP godoc
// @Summary Ссылка QR-кода бизнеса
// @Description Возвращает постоянную ссылку бизнеса, которую кодирует его QR-код.
// @Tags QR
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Ссылка для QR-кода"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /api/qr-code/business [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.qrcode.business"

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
		"reviewUrl":   h.publicBaseURL + "/review/" + user.ReviewURLID,
		"reviewUrlId": user.ReviewURLID,
	}))
}
