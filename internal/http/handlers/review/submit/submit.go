// Package submit реализует HTTP-обработчик приема отзыва с публичной
// страницы оценки. Отзыв сохраняется один раз, ответ говорит клиенту,
// куда идти дальше: на страницу Google или в приватную анкету.
package submit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/thegoldstar/goldstar-server/internal/http/response"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
	"github.com/thegoldstar/goldstar-server/internal/services/review"
)

// Request — структура отправляемого отзыва. Rating обязателен и лежит
// в диапазоне от одного до пяти, нулевое значение отклоняется.
type Request struct {
	BusinessID     string `json:"businessId" validate:"required,uuid"`
	Rating         int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment        string `json:"comment" validate:"max=2000"`
	IsPublicChoice bool   `json:"isPublicChoice"`
}

// Handler обрабатывает прием отзывов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики приема отзывов.
type Service interface {
	Submit(ctx context.Context, businessUID string, req review.SubmitRequest) (*review.SubmitResult, error)
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
// @Summary Отправить отзыв
// @Description Сохраняет отзыв и возвращает направление: внешняя страница Google или приватная анкета.
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные отзыва"
// @Success 200 {object} map[string]any "Отзыв принят, в ответе направление"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Бизнес не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении отзыва"
// @Router /reviews/submit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded",
		slog.String("business_id", req.BusinessID),
		slog.Int("rating", req.Rating))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	result, err := h.service.Submit(r.Context(), req.BusinessID, review.SubmitRequest{
		Rating:         req.Rating,
		Comment:        req.Comment,
		IsPublicChoice: req.IsPublicChoice,
	})
	if err != nil {
		if errors.Is(err, review.ErrBusinessNotFound) {
			log.Error("business not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("business not found"))
			return
		}
		log.Error("failed to submit review", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not submit review"))
		return
	}

	log.Info("review submitted",
		slog.Int("review_id", result.ReviewID),
		slog.String("destination", result.Destination))
	render.JSON(w, r, response.OKWithData(result))
}
