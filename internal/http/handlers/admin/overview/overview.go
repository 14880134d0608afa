// Package overview реализует HTTP-обработчик финансовой сводки
// платформы для админ-панели.
package overview

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/thegoldstar/goldstar-server/internal/http/response"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
	"github.com/thegoldstar/goldstar-server/internal/storage/repository"
)

// Handler возвращает финансовую сводку платформы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики финансовой сводки.
type Service interface {
	FinancialOverview(ctx context.Context) (*repository.FinancialOverview, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Финансовая сводка
// @Description Возвращает сводку по подпискам и выплаченным комиссиям.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Финансовая сводка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /admin/overview [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.overview"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	overview, err := h.service.FinancialOverview(r.Context())
	if err != nil {
		log.Error("failed to load financial overview", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load overview"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"overview": overview,
	}))
}
