package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые имеют смысл для клиента.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
)

type operation int

const (
	opRead operation = iota
	opWrite
	opDelete
)

// classify переводит ошибку драйвера в ошибку приложения.
// Неизвестные ошибки оборачиваются с контекстом и считаются внутренними.
func classify(err error, entity string, op operation) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity + " not found.")
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return apperr.Wrap(apperr.KindConflict, entity+" already exists.", err)
		case codeForeignKeyViolation:
			if op == opDelete {
				return apperr.Wrap(apperr.KindConflict, entity+" is still referenced by other records.", err)
			}
			return apperr.Wrap(apperr.KindNotFound, "Referenced record not found.", err)
		case codeNotNullViolation, codeCheckViolation:
			return apperr.Wrap(apperr.KindValidation, "Invalid "+entity+" data.", err)
		}
	}
	return fmt.Errorf("ошибка запроса (%s): %w", entity, err)
}
