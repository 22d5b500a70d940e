// Package apperr описывает ошибки приложения и их отображение в HTTP-статусы.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind классифицирует ошибку для транспортного слоя.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

// Error - ошибка с сообщением для клиента и (необязательно) исходной причиной.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation - ошибка входных данных (400).
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// NotFound - запись не найдена (404).
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Conflict - нарушение уникальности (409).
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// Unauthorized - ошибка аутентификации (401).
func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// Forbidden - недостаточно прав (403).
func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

// Internal оборачивает неожиданную ошибку (БД, файловая система, сеть).
func Internal(err error) error {
	return &Error{Kind: KindInternal, Msg: "Server Error.", Err: err}
}

// Wrap сохраняет причину, но задает вид и сообщение для клиента.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf возвращает вид ошибки; любые неизвестные ошибки считаются внутренними.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is проверяет вид ошибки.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message возвращает текст для клиента.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "Server Error."
}

// Status переводит вид ошибки в HTTP-статус.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
