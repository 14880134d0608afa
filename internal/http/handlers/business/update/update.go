// Package update реализует HTTP-обработчик обновления профиля бизнеса.
package update

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
	"github.com/thegoldstar/goldstar-server/internal/services/business"
)

// Request — новые значения полей профиля бизнеса.
type Request struct {
	BusinessName     string `json:"businessName" validate:"required,max=200"`
	OwnerName        string `json:"ownerName" validate:"max=200"`
	Phone            string `json:"phone" validate:"max=32"`
	Address          string `json:"address" validate:"max=500"`
	GoogleReviewLink string `json:"googleReviewLink" validate:"omitempty,url"`
}

// Handler обрабатывает обновление профиля бизнеса.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	UpdateProfile(ctx context.Context, uid string, req business.ProfileUpdate) (*models.User, error)
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
// @Summary Обновить профиль бизнеса
// @Description Сохраняет новые данные профиля текущего бизнеса.
// @Tags Business
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные профиля"
// @Success 200 {object} map[string]any "Обновленный профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /business/profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.business.update"

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

	updated, err := h.service.UpdateProfile(r.Context(), user.UID, business.ProfileUpdate{
		BusinessName:     req.BusinessName,
		OwnerName:        req.OwnerName,
		Phone:            req.Phone,
		Address:          req.Address,
		GoogleReviewLink: req.GoogleReviewLink,
	})
	if err != nil {
		log.Error("failed to update profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update profile"))
		return
	}

	log.Info("business profile updated", slog.String("uid", user.UID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"profile": updated,
	}))
}
