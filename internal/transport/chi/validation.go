package chi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ridedine/ridedine/internal/domain/query"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("hhmm", validHHMM)
	_ = v.RegisterValidation("notblank", notBlank)
	v.RegisterStructValidation(coordinatePair, DispatchRequest{})
	return v
}

var validHHMM validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return query.ValidTime(s)
	}
	return false
}

var notBlank validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

// coordinatePair rejects a request that sets only one of latitude and longitude.
func coordinatePair(sl validator.StructLevel) {
	req := sl.Current().Interface().(DispatchRequest)
	if req.Latitude == nil && req.Longitude != nil {
		sl.ReportError(req.Latitude, "latitude", "Latitude", "required_with", "longitude")
	}
	if req.Longitude == nil && req.Latitude != nil {
		sl.ReportError(req.Longitude, "longitude", "Longitude", "required_with", "latitude")
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// validationMessage renders validator errors as one client-facing sentence.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fieldMessage(fe))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be a positive number", fe.Field())
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range", fe.Field())
	case "hhmm":
		return fmt.Sprintf("%s must be HH:MM between 00:00 and 23:59", fe.Field())
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "required_with":
		return fmt.Sprintf("%s is required together with %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
