// Package public реализует HTTP-обработчик открытого профиля бизнеса.
package public

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/thegoldstar/goldstar-server/internal/http/response"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
	"github.com/thegoldstar/goldstar-server/internal/models"
)

// Handler обрабатывает запросы открытого профиля бизнеса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики открытого профиля.
type Service interface {
	PublicProfile(ctx context.Context, uid string) (*models.PublicBusiness, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Открытый профиль бизнеса
// @Description Возвращает открытую часть профиля бизнеса по его идентификатору.
// @Tags Business
// @Produce  json
// @Param id path string true "UID бизнеса"
// @Success 200 {object} map[string]any "Открытый профиль бизнеса"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Бизнес не найден"
// @Router /business/{id}/public [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.business.public"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "id")
	if _, err := uuid.Parse(uid); err != nil {
		log.Error("invalid business id", slog.String("id", uid))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid business id"))
		return
	}

	business, err := h.service.PublicProfile(r.Context(), uid)
	if err != nil {
		log.Error("failed to load business", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("business not found"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"business": business,
	}))
}
