package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/render"
)

// RespondWithJSON отправляет JSON ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// RespondWithHTML отправляет HTML страницу с указанным статус кодом.
// Ошибка рендеринга после начала записи уже не может изменить ответ,
// поэтому она игнорируется.
func RespondWithHTML(w http.ResponseWriter, statusCode int, renderPage func(io.Writer) error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = renderPage(w)
}
