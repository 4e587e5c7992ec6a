package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"slices"
	"slotlink/shared/constant"
	"slotlink/shared/failure"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var (
	validate *val.Validate

	slugPattern = regexp.MustCompile(`^[a-z0-9-]{1,64}$`)
	weekdays    = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
)

func validateSlug(fl val.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

func validateClock(fl val.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != len(constant.ClockFormat) {
		return false
	}

	_, err := time.Parse(constant.ClockFormat, value)

	return err == nil
}

func validateWeekday(fl val.FieldLevel) bool {
	return slices.Contains(weekdays, strings.ToLower(fl.Field().String()))
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	rules := map[string]val.Func{
		"empty":   func(fl val.FieldLevel) bool { return fl.Field().IsZero() },
		"slug":    validateSlug,
		"clock":   validateClock,
		"weekday": validateWeekday,
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})
}

// Validate decodes a JSON document from r into data and validates the result. Unknown fields are
// rejected.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return failure.BadRequestFromString("request body is required") //nolint:wrapcheck
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
