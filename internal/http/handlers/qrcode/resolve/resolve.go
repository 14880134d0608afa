// Package resolve реализует HTTP-обработчик разрешения QR-ссылки
// в открытый профиль бизнеса для страницы оценки.
package resolve

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

// Handler обрабатывает переходы по QR-коду.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики разрешения QR-ссылки.
type Service interface {
	ResolveBusiness(ctx context.Context, reviewURLID string) (*models.PublicBusiness, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Разрешить QR-ссылку
// @Description Возвращает открытый профиль бизнеса по идентификатору из QR-кода.
// @Tags QR
// @Produce  json
// @Param urlId path string true "Идентификатор QR-ссылки"
// @Success 200 {object} map[string]any "Открытый профиль бизнеса"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Бизнес не найден"
// @Router /api/qr-code/review/{urlId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.qrcode.resolve"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	urlID := chi.URLParam(r, "urlId")
	if _, err := uuid.Parse(urlID); err != nil {
		log.Error("invalid url id", slog.String("url_id", urlID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid qr link"))
		return
	}

	business, err := h.service.ResolveBusiness(r.Context(), urlID)
	if err != nil {
		log.Error("failed to resolve business", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("business not found"))
		return
	}

	log.Info("qr link resolved", slog.String("business_uid", business.UID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"business": business,
	}))
}
