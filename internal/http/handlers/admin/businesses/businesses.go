// Package businesses реализует HTTP-обработчик списка бизнесов
// для админ-панели.
package businesses

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/thegoldstar/goldstar-server/internal/http/response"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
	"github.com/thegoldstar/goldstar-server/internal/models"
)

// Handler возвращает список бизнесов платформы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс административных выборок бизнесов.
type Service interface {
	ListBusinesses(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список бизнесов
// @Description Возвращает бизнесы платформы с пагинацией.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Размер страницы (по умолчанию 50)"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список бизнесов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /admin/businesses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.businesses"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, offset := pagination(r)

	users, err := h.service.ListBusinesses(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list businesses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list businesses"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"businesses": users,
	}))
}

// pagination читает limit/offset из query с безопасными границами.
func pagination(r *http.Request) (limit, offset int) {
	limit = 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 200 {
		limit = 200
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
