package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/folio/internal/scene"
	folioerrors "github.com/alexisbeaulieu97/folio/pkg/errors"
)

// ValidateConfig performs schema and cross-field validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return folioerrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[scene.Section]int, len(cfg.Sections))
	for i, content := range cfg.Sections {
		section, _ := scene.ParseSection(content.ID)
		if first, ok := seen[section]; ok {
			return folioerrors.NewValidationError(fieldForSection(i, "id"),
				fmt.Sprintf("duplicate section %q (first defined at sections[%d])", content.ID, first), nil)
		}
		seen[section] = i
	}

	return nil
}

// convertValidationError reports the first failed rule as a folio
// validation error keyed by its YAML path.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		return folioerrors.NewRuleError(yamlishFieldName(ve), ve.Tag(), ruleMessage(ve), err)
	}

	return folioerrors.NewValidationError("config", err.Error(), err)
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gtfield":
		return "must be greater than " + snakeCase(fe.Param())
	case "section":
		return fmt.Sprintf("unknown section %q", fe.Value())
	case "tailwind":
		return fmt.Sprintf("%q is not a Tailwind colour such as blue-500", fe.Value())
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, snakeCase(part))
	}
	return strings.Join(lowered, ".")
}

// snakeCase turns "CellWidthPx" into "cell_width_px" and "TickMS" into
// "tick_ms", leaving any "[n]" suffix untouched.
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fieldForSection(index int, field string) string {
	return fmt.Sprintf("sections[%d].%s", index, field)
}
