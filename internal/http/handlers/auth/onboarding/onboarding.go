// Package onboarding реализует HTTP-обработчик завершения онбординга
// бизнеса: сохранение профиля и ссылки на страницу Google.
package onboarding

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/thegoldstar/goldstar-server/internal/http/middlewarectx"
	"github.com/thegoldstar/goldstar-server/internal/http/response"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
	"github.com/thegoldstar/goldstar-server/internal/models"
	"github.com/thegoldstar/goldstar-server/internal/services/auth"
)

// Request — данные бизнеса с экрана онбординга.
type Request struct {
	BusinessName     string `json:"businessName" validate:"required,max=200"`
	OwnerName        string `json:"ownerName" validate:"max=200"`
	Phone            string `json:"phone" validate:"max=32"`
	Address          string `json:"address" validate:"max=500"`
	GoogleReviewLink string `json:"googleReviewLink" validate:"omitempty,url"`
}

// Handler обрабатывает завершение онбординга.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики онбординга.
type Service interface {
	CompleteOnboarding(ctx context.Context, uid string, req auth.OnboardingRequest) (*models.User, error)
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
// @Summary Завершить онбординг
// @Description Сохраняет профиль бизнеса и закрывает онбординг. Возвращает обновленный профиль.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Профиль бизнеса"
// @Success 200 {object} map[string]any "Онбординг завершен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/complete-onboarding [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.onboarding"

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
	log.Info("request body decoded", slog.String("business_name", req.BusinessName))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	uid, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || uid == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.service.CompleteOnboarding(r.Context(), uid, auth.OnboardingRequest{
		BusinessName:     req.BusinessName,
		OwnerName:        req.OwnerName,
		Phone:            req.Phone,
		Address:          req.Address,
		GoogleReviewLink: req.GoogleReviewLink,
	})
	if err != nil {
		log.Error("failed to complete onboarding", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not complete onboarding"))
		return
	}

	log.Info("onboarding completed", slog.String("uid", uid))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user": user,
	}))
}
