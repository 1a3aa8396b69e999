package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody ограничение на чтение тела ответа с ошибкой
const maxErrorBody = 64 << 10

// Error ответ внешнего сервиса со статусом вне 2xx
type Error struct {
	Service    string
	StatusCode int
	// Message текст из полей "message" или "error" тела ответа, если они есть
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Service, e.StatusCode)
}

// errorBody известные форматы тела ошибки внешних сервисов
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewError читает тело ответа и собирает *Error
func NewError(service string, resp *http.Response) *Error {
	return newError(service, resp, false)
}

// NewGatewayError как NewError, но текст берется сначала из "error", затем из "message":
// так платежный шлюз сообщает причину отказа
func NewGatewayError(service string, resp *http.Response) *Error {
	return newError(service, resp, true)
}

func newError(service string, resp *http.Response, errorFirst bool) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := ExtractMessage(body)
	if errorFirst {
		msg = ExtractError(body)
	}
	return &Error{
		Service:    service,
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
}

// ExtractMessage возвращает "message", затем "error" из JSON-тела.
// Тело, не являющееся JSON-объектом, возвращается как есть, если оно короткое.
func ExtractMessage(body []byte) string {
	return extractText(body, false)
}

// ExtractError возвращает "error", затем "message" из JSON-тела
func ExtractError(body []byte) string {
	return extractText(body, true)
}

func extractText(body []byte, errorFirst bool) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var eb errorBody
	if err := json.Unmarshal([]byte(trimmed), &eb); err == nil {
		first, second := eb.Message, eb.Error
		if errorFirst {
			first, second = eb.Error, eb.Message
		}
		if first != "" {
			return first
		}
		return second
	}

	if len(trimmed) <= 200 && !strings.HasPrefix(trimmed, "<") {
		return trimmed
	}
	return ""
}

// MessageOr возвращает текст ошибки внешнего сервиса или fallback
func MessageOr(err error, fallback string) string {
	var ue *Error
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	return fallback
}

// StatusCode возвращает HTTP-статус внешнего сервиса или 0
func StatusCode(err error) int {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}
