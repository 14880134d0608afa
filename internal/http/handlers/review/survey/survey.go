// Package survey реализует HTTP-обработчик приема ответов приватной
// анкеты, следующей за негативным отзывом.
package survey

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

// Request — ответы приватной анкеты.
type Request struct {
	BusinessID       string   `json:"businessId" validate:"required,uuid"`
	ReviewID         int      `json:"reviewId" validate:"required,gte=1"`
	ImprovementAreas []string `json:"improvementAreas" validate:"max=10,dive,max=100"`
	Feedback         string   `json:"feedback" validate:"max=2000"`
}

// Handler обрабатывает прием анкет.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики приема анкет.
type Service interface {
	SubmitSurvey(ctx context.Context, businessUID string, req review.SurveyRequest) (int, error)
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
// @Summary Отправить приватную анкету
// @Description Сохраняет ответы анкеты обратной связи для бизнеса.
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Param request body Request true "Ответы анкеты"
// @Success 200 {object} map[string]any "Анкета сохранена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден у этого бизнеса"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении анкеты"
// @Router /reviews/survey [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.survey"

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
	log.Info("request body decoded", slog.Int("review_id", req.ReviewID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id, err := h.service.SubmitSurvey(r.Context(), req.BusinessID, review.SurveyRequest{
		ReviewID:         req.ReviewID,
		ImprovementAreas: req.ImprovementAreas,
		Feedback:         req.Feedback,
	})
	if err != nil {
		if errors.Is(err, review.ErrReviewNotFound) {
			log.Error("review not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("review not found"))
			return
		}
		log.Error("failed to save survey", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save survey"))
		return
	}

	log.Info("survey saved", slog.Int("survey_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"surveyId": id,
	}))
}
