// Package webhook реализует HTTP-обработчик уведомлений платежного
// провайдера.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/thegoldstar/goldstar-server/internal/http/response"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
	"github.com/thegoldstar/goldstar-server/internal/paymentprovider"
)

// SignatureHeader — заголовок с HMAC-подписью тела уведомления.
const SignatureHeader = "X-Webhook-Signature"

// maxBodySize ограничивает размер тела уведомления.
const maxBodySize = 1 << 20

// Handler обрабатывает уведомления платежного провайдера.
type Handler struct {
	log     *slog.Logger
	service Service
	secret  []byte
}

// Service описывает интерфейс обработки платежных событий.
type Service interface {
	ProcessEvent(ctx context.Context, event paymentprovider.WebhookEvent) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:     log,
		service: service,
		secret:  []byte(secret),
	}
}

// ServeHTTP godoc
// @Summary Уведомление платежного провайдера
// @Description Принимает подписанное уведомление о платеже и обновляет подписку.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param X-Webhook-Signature header string true "HMAC-SHA256 подпись тела"
// @Param request body paymentprovider.WebhookEvent true "Событие платежа"
// @Success 200 {object} response.Response "Уведомление обработано"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело"
// @Failure 401 {object} response.ErrorResponse "Подпись не совпадает"
// @Router /payments/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		log.Error("failed to read request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if !h.verifySignature(body, r.Header.Get(SignatureHeader)) {
		log.Error("webhook signature mismatch")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid signature"))
		return
	}

	var event paymentprovider.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("failed to decode webhook event", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.service.ProcessEvent(r.Context(), event); err != nil {
		log.Error("failed to process webhook event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process event"))
		return
	}

	log.Info("webhook event processed", slog.String("event", event.Event))
	render.JSON(w, r, response.OK())
}

// verifySignature сверяет HMAC-SHA256 тела с подписью из заголовка.
func (h *Handler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, h.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
