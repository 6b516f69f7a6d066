package config

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/folio/internal/scene"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	tailwindPattern = regexp.MustCompile(`^([a-z]+)-(\d{2,3})$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("section", func(fl validator.FieldLevel) bool {
			_, err := scene.ParseSection(fl.Field().String())
			return err == nil
		})

		// "blue-500" style colour tokens
		_ = v.RegisterValidation("tailwind", func(fl validator.FieldLevel) bool {
			m := tailwindPattern.FindStringSubmatch(fl.Field().String())
			if m == nil {
				return false
			}
			shade, err := strconv.Atoi(m[2])
			if err != nil {
				return false
			}
			_, ok := scene.TailwindHex(m[1], shade)
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
