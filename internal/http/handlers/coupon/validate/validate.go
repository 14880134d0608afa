// Package validate реализует HTTP-обработчик проверки купона.
package validate

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
	"github.com/thegoldstar/goldstar-server/internal/models"
	"github.com/thegoldstar/goldstar-server/internal/services/coupon"
)

// Request — код проверяемого купона.
type Request struct {
	Code string `json:"code" validate:"required,max=64"`
}

// Handler обрабатывает проверку купонов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики проверки купонов.
type Service interface {
	Validate(ctx context.Context, code string) (*models.Coupon, error)
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
// @Summary Проверить купон
// @Description Проверяет купон без погашения и возвращает его условия.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Код купона"
// @Success 200 {object} map[string]any "Условия купона"
// @Failure 400 {object} response.ErrorResponse "Купон недействителен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /auth/coupons/validate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.validate"

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

	c, err := h.service.Validate(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, coupon.ErrCouponInvalid) {
			log.Info("coupon rejected", slog.String("code", req.Code))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("coupon is not valid"))
			return
		}
		log.Error("failed to validate coupon", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not validate coupon"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"code":       c.Code,
		"percentOff": c.PercentOff,
		"trialDays":  c.TrialDays,
	}))
}
