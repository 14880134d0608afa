// Package reply реализует HTTP-обработчик ответа владельца на отзыв.
package reply

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/thegoldstar/goldstar-server/internal/http/middlewarectx"
	"github.com/thegoldstar/goldstar-server/internal/http/response"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
)

// Request — текст ответа владельца.
type Request struct {
	Reply string `json:"reply" validate:"required,max=2000"`
}

// Handler обрабатывает ответы на отзывы.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики ответа на отзыв.
type Service interface {
	Reply(ctx context.Context, reviewID int, businessUID, reply string) (int, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Ответить на отзыв
// @Description Сохраняет ответ владельца на отзыв его бизнеса.
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID отзыва"
// @Param request body Request true "Текст ответа"
// @Success 200 {object} map[string]any "Ответ сохранен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /reviews/{id}/reply [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.reply"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	reviewID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || reviewID <= 0 {
		log.Error("invalid review id", slog.String("id", chi.URLParam(r, "id")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid review id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	count, err := h.service.Reply(r.Context(), reviewID, user.UID, req.Reply)
	if err != nil {
		log.Error("failed to save reply", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save reply"))
		return
	}
	if count == 0 {
		log.Error("review not found", slog.Int("review_id", reviewID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("review not found"))
		return
	}

	log.Info("reply saved", slog.Int("review_id", reviewID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"reviewId": reviewID,
	}))
}
