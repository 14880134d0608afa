// Package checkout реализует HTTP-обработчик создания платежной сессии.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/thegoldstar/goldstar-server/internal/http/middlewarectx"
	"github.com/thegoldstar/goldstar-server/internal/http/response"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
	"github.com/thegoldstar/goldstar-server/internal/services/coupon"
)

// Request — параметры создания платежной сессии.
type Request struct {
	CouponCode string `json:"couponCode" validate:"max=64"`
}

// Handler обрабатывает создание платежных сессий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания платежной сессии.
type Service interface {
	CreateCheckout(ctx context.Context, uid, couponCode string) (string, error)
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
// @Summary Создать платежную сессию
// @Description Создает сессию оплаты месячной подписки у платежного провайдера.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Код купона (опционально)"
// @Success 200 {object} map[string]any "Ссылка подтверждения оплаты"
// @Failure 400 {object} response.ErrorResponse "Купон недействителен"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Платежный провайдер недоступен"
// @Router /auth/payment/create-checkout-session [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.checkout"

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

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	confirmationURL, err := h.service.CreateCheckout(r.Context(), user.UID, req.CouponCode)
	if err != nil {
		if errors.Is(err, coupon.ErrCouponInvalid) {
			log.Info("coupon rejected", slog.String("code", req.CouponCode))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("coupon is not valid"))
			return
		}
		log.Error("failed to create checkout session", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not create checkout session"))
		return
	}

	log.Info("checkout session created", slog.String("uid", user.UID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"confirmationUrl": confirmationURL,
	}))
}
