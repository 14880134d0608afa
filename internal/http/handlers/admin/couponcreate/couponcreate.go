// Package couponcreate реализует HTTP-обработчик создания купона
// в админ-панели.
package couponcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/thegoldstar/goldstar-server/internal/http/response"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
	"github.com/thegoldstar/goldstar-server/internal/models"
)

// Request — параметры нового купона. Купон либо дает скидку на
// подписку, либо продлевает пробный период.
type Request struct {
	Code           string     `json:"code" validate:"required,max=64"`
	PercentOff     int        `json:"percentOff" validate:"gte=0,lte=100"`
	TrialDays      int        `json:"trialDays" validate:"gte=0,lte=365"`
	MaxRedemptions int        `json:"maxRedemptions" validate:"gte=0"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}

// Handler обрабатывает создание купонов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания купонов.
type Service interface {
	Create(ctx context.Context, coupon models.Coupon) (int, error)
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
// @Summary Создать купон
// @Description Создает купон со скидкой или продлением пробного периода.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Параметры купона"
// @Success 200 {object} map[string]any "ID созданного купона"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/coupons [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.couponcreate"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Create(r.Context(), models.Coupon{
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		PercentOff:     req.PercentOff,
		TrialDays:      req.TrialDays,
		MaxRedemptions: req.MaxRedemptions,
		ExpiresAt:      req.ExpiresAt,
		Active:         true,
	})
	if err != nil {
		log.Error("failed to create coupon", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create coupon"))
		return
	}

	log.Info("coupon created", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
