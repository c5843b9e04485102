package handler

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/marcos/task-tracker-project/internal/domain"
	"github.com/marcos/task-tracker-project/pkg/logger"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail содержит код и описание ошибки.
// ErrorID заполняется только для внутренних ошибок и служит
// корреляционным идентификатором для поиска в логах.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	ErrorID string `json:"error_id,omitempty"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы.
// Отказ политики не раскрывает, была ли причина в роли или во владении.
// Неизвестные ошибки (в том числе сбои хранилища) логируются с
// корреляционным идентификатором и отдаются как generic internal error.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.MapErrorToCode(err)

	switch code {
	case domain.CodeUsernameTaken:
		RespondWithError(w, r, http.StatusConflict, string(code), "username already taken")
	case domain.CodeInvalidInput:
		RespondWithError(w, r, http.StatusBadRequest, string(code), err.Error())
	case domain.CodeForbidden:
		RespondWithError(w, r, http.StatusForbidden, string(code), "operation is not permitted")
	case domain.CodeNotFound:
		RespondWithError(w, r, http.StatusNotFound, string(code), "resource not found")
	case domain.CodeUnauthorized:
		RespondWithError(w, r, http.StatusUnauthorized, string(code), "unauthorized")
	default:
		errorID := chimiddleware.GetReqID(r.Context())
		logger.FromContext(r.Context()).Error("internal error",
			zap.String("error_id", errorID),
			zap.Error(err),
		)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{
			Error: ErrorDetail{
				Code:    string(domain.CodeInternal),
				Message: "internal server error",
				ErrorID: errorID,
			},
		})
	}
}
