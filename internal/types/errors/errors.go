package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrCanceled           = errors.New("request canceled")
	ErrValidation         = errors.New("validation failed")
	ErrBackend            = errors.New("backend error")
	ErrNetwork            = errors.New("backend is unreachable")
	ErrInvalidJSONPayload = errors.New("invalid JSON payload")

	ErrNotDeletable   = errors.New("advertisement was not created by user and can't be deleted")
	ErrNotCompletable = errors.New("order is already received")
	ErrNotEditing     = errors.New("advertisement is not being edited")

	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionIsExpired = errors.New("session is expired")
	ErrBadID            = errors.New("bad id")
)

// ValidationError - ошибки валидации формы по полям.
// Поле -> сообщение, которое показывается рядом с полем ввода.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}

	return fmt.Sprintf("%s (%s)", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// BackendError - бэкенд ответил статусом, отличным от 2xx и 404.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrBackend.Error(), e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrBackend.Error(), e.StatusCode, e.Message)
}

func (e *BackendError) Unwrap() error {
	return ErrBackend
}

type ErrorServer struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *ErrorServer) Error() string {
	return e.Message
}

/*
NewErrorServer
Функция имеет возможность принимать "nil ошибку"
при получении nil наша функция понимает, что нам
просто надо отдать саксесс клиенту
*/
func NewErrorServer(err error) ErrorServer {
	if err == nil {
		return ErrorServer{
			Message: "success",
		}
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ErrorServer{
			Message: ErrValidation.Error(),
			Fields:  ve.Fields,
		}
	}

	return ErrorServer{
		Message: err.Error(),
	}
}

func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(NewErrorServer(err)); errEncode != nil {
		logger.Error(errEncode)
	}
}

// StatusCode подбирает HTTP статус для ошибки из нашей таксономии
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidJSONPayload), errors.Is(err, ErrBadID):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSessionIsExpired):
		return http.StatusGone
	case errors.Is(err, ErrNotDeletable):
		return http.StatusForbidden
	case errors.Is(err, ErrNotCompletable), errors.Is(err, ErrNotEditing):
		return http.StatusConflict
	case errors.Is(err, ErrBackend), errors.Is(err, ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
