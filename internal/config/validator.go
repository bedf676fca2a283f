package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	validate := validator.New()

	// report yaml keys, that's what users edit
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = validate.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		if err != nil {
			return false
		}
		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	})

	return validate
}

// Validate checks required keys, URL shapes and positive durations.
func Validate(cfg *Config) error {
	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), "Config.")
		msg := fmt.Sprintf("'%s': rule '%s'", field, e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if v := fmt.Sprint(e.Value()); v != "" {
			msg += fmt.Sprintf(", actual: '%s'", v)
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(msgs, "\n  "))
}
