// Package businessread реализует HTTP-обработчик карточки бизнеса
// в админ-панели.
package businessread

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

// Handler возвращает карточку одного бизнеса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения профиля бизнеса.
type Service interface {
	Profile(ctx context.Context, uid string) (*models.User, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Карточка бизнеса
// @Description Возвращает полный профиль бизнеса по его UID.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param uid path string true "UID бизнеса"
// @Success 200 {object} map[string]any "Профиль бизнеса"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Бизнес не найден"
// @Router /admin/businesses/{uid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.businessread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uid")
	if _, err := uuid.Parse(uid); err != nil {
		log.Error("invalid business uid", slog.String("uid", uid))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid business uid"))
		return
	}

	user, err := h.service.Profile(r.Context(), uid)
	if err != nil {
		log.Error("failed to load business", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("business not found"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"business": user,
	}))
}
