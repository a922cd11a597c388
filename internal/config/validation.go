package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"

	"github.com/sungur/wslpath/internal/codec"
	"github.com/sungur/wslpath/internal/convert"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	mustRegister("pathsep", func(s string) bool {
		_, err := codec.ParseSeparator(s)
		return err == nil
	})
	mustRegister("linesep", func(s string) bool {
		_, err := convert.ParseLineSep(s)
		return err == nil
	})
	mustRegister("size", func(s string) bool {
		n, err := units.RAMInBytes(s)
		return err == nil && n > 0
	})
	mustRegister("duration", func(s string) bool {
		d, err := time.ParseDuration(s)
		return err == nil && d > 0
	})
}

func mustRegister(tag string, ok func(string) bool) {
	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return ok(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Validate validates the configuration using struct tags and custom rules.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return validateCustomRules(cfg)
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	if cfg.MinBlocks > 0 && cfg.MaxBlocks > 0 && cfg.MinBlocks > cfg.MaxBlocks {
		return fmt.Errorf("minBlocks (%d) exceeds maxBlocks (%d)", cfg.MinBlocks, cfg.MaxBlocks)
	}
	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		// Return the first validation error with context
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
