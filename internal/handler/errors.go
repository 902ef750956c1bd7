package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"socialfeedCPT/internal/service"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse - стандартный ответ с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError сопоставляет типизированные ошибки ядра с
// HTTP-статусами. Сырые ошибки хранилищ наружу не уходят.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateRequest):
		WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrImageRequired),
		errors.Is(err, service.ErrImageCountExceeded),
		errors.Is(err, service.ErrImageSizeExceeded),
		errors.Is(err, service.ErrInvalidImageType),
		errors.Is(err, service.ErrImageOrderMismatch),
		errors.Is(err, service.ErrUnknownChannel):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrImageNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrPostAccessDenied):
		WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrImageUploadFailed):
		WriteError(w, err.Error(), http.StatusBadGateway)
	default:
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
