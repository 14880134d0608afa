// Package routeaccess реализует HTTP-обработчик вычисления решения
// цепочки доступа для экрана дашборда. Клиент спрашивает до навигации,
// сервер отвечает: пустить, направить на другой экран или подождать.
package routeaccess

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/thegoldstar/goldstar-server/internal/access"
	"github.com/thegoldstar/goldstar-server/internal/http/middlewarectx"
	"github.com/thegoldstar/goldstar-server/internal/http/response"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
)

// Handler обрабатывает запросы решения доступа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс вычисления решения доступа.
type Service interface {
	RouteAccess(ctx context.Context, uid, path string) (access.Decision, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Решение доступа к экрану
// @Description Вычисляет решение цепочки проверок для пути: allow, redirect или pending.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Param path query string true "Путь экрана, например /dashboard/reviews"
// @Success 200 {object} map[string]any "Решение доступа"
// @Failure 400 {object} response.ErrorResponse "Не указан путь"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/route-access [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.routeaccess"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	path := r.URL.Query().Get("path")
	if path == "" {
		log.Error("path query parameter missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("path query parameter is required"))
		return
	}

	uid, _ := r.Context().Value(middlewarectx.UserUID).(string)

	decision, err := h.service.RouteAccess(r.Context(), uid, path)
	if err != nil {
		log.Error("failed to compute route access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	data := map[string]any{"path": path}
	switch decision.Kind {
	case access.KindAllow:
		data["decision"] = "allow"
	case access.KindRedirect:
		data["decision"] = "redirect"
		data["redirect"] = decision.Path
	case access.KindPending:
		data["decision"] = "pending"
	}

	log.Info("route access computed",
		slog.String("path", path),
		slog.Any("decision", data["decision"]))
	render.JSON(w, r, response.OKWithData(data))
}
