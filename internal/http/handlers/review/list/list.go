// Package list реализует HTTP-обработчик списка отзывов бизнеса
// с фильтром по направлению и пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/thegoldstar/goldstar-server/internal/http/middlewarectx"
	"github.com/thegoldstar/goldstar-server/internal/http/response"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
	"github.com/thegoldstar/goldstar-server/internal/models"
)

// Handler обрабатывает запросы списка отзывов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка отзывов.
type Service interface {
	List(ctx context.Context, businessUID, destination string, limit, offset int) ([]*models.Review, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список отзывов бизнеса
// @Description Возвращает отзывы текущего бизнеса. Фильтр по направлению: external-google или private-survey.
// @Tags Reviews
// @Produce  json
// @Security BearerAuth
// @Param filter query string false "Направление отзыва"
// @Param limit query int false "Размер страницы" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список отзывов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reviews [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.list"

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

	filter := r.URL.Query().Get("filter")
	if filter != "" && filter != models.DestinationExternal && filter != models.DestinationSurvey {
		log.Error("unknown filter", slog.String("filter", filter))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown filter"))
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	reviews, err := h.service.List(r.Context(), user.UID, filter, limit, offset)
	if err != nil {
		log.Error("failed to list reviews", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list reviews"))
		return
	}

	log.Info("reviews listed", slog.Int("count", len(reviews)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"reviews": reviews,
	}))
}
