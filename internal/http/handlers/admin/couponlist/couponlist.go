// Package couponlist реализует HTTP-обработчик списка купонов
// в админ-панели.
package couponlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/thegoldstar/goldstar-server/internal/http/response"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
	"github.com/thegoldstar/goldstar-server/internal/models"
)

// Handler возвращает все купоны платформы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка купонов.
type Service interface {
	List(ctx context.Context) ([]*models.Coupon, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список купонов
// @Description Возвращает все купоны с их лимитами и счетчиками погашений.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список купонов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /admin/coupons [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.couponlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	coupons, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list coupons", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list coupons"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"coupons": coupons,
	}))
}
