// Package health реализует HTTP-обработчик проверки живости сервиса.
package health

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/thegoldstar/goldstar-server/internal/http/response"
	"github.com/thegoldstar/goldstar-server/internal/lib/sl"
)

// Handler отвечает на проверки живости.
type Handler struct {
	log *slog.Logger
	db  *sql.DB
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, db *sql.DB) *Handler {
	return &Handler{log: log, db: db}
}

// ServeHTTP godoc
// @Summary Проверка живости
// @Description Проверяет доступность сервиса и его базы данных.
// @Tags Ops
// @Produce  json
// @Success 200 {object} response.Response "Сервис работает"
// @Failure 503 {object} response.ErrorResponse "База данных недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.log.Error("health check failed", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database unavailable"))
		return
	}
	render.JSON(w, r, response.OK())
}
