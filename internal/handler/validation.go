package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var tagNamesOnce sync.Once

// useJSONFieldNames заставляет валидатор gin называть поля по json-тегам.
func useJSONFieldNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
}

// bindError переводит ошибку привязки запроса в ошибку валидации с понятным сообщением.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.KindValidation, "Invalid request body.", err)
	}
	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	if len(missing) > 0 {
		return apperr.Wrap(apperr.KindValidation,
			fmt.Sprintf("Missing required fields: %s.", strings.Join(missing, ", ")), err)
	}
	return apperr.Wrap(apperr.KindValidation,
		fmt.Sprintf("Invalid value for fields: %s.", strings.Join(invalid, ", ")), err)
}

// validate проверяет структуру теми же правилами, что и привязка gin.
func validate(obj any) error {
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return bindError(err)
	}
	return nil
}
