package palette

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"

	"rulecanvas/internal/domain"
)

var (
	ErrUnknownKind   = errors.New("unknown block kind")
	ErrUnexpectedKey = errors.New("unexpected config key")
	ErrInvalidConfig = errors.New("invalid config")
)

// Named frequencies accepted by the schedule trigger, mapped to cron descriptors.
var frequencies = map[string]string{
	"hourly":  "@hourly",
	"daily":   "@daily",
	"weekly":  "@weekly",
	"monthly": "@monthly",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON option names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	if err := v.RegisterValidation("schedule", func(fl validator.FieldLevel) bool {
		_, err := ScheduleSpec(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// ScheduleSpec resolves a schedule trigger frequency to a cron spec. Named
// frequencies map to descriptors; anything else must be a standard 5-field
// cron expression.
func ScheduleSpec(frequency string) (string, error) {
	if spec, ok := frequencies[frequency]; ok {
		return spec, nil
	}
	if _, err := cron.ParseStandard(frequency); err != nil {
		return "", fmt.Errorf("frequency %q: %w", frequency, err)
	}
	return frequency, nil
}

// Validate checks cfg against the template for kind: only the template's
// option keys may be set, and every set option must hold an accepted value.
func Validate(kind domain.BlockKind, cfg domain.Config) error {
	t, ok := Lookup(kind)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	for _, key := range cfg.Keys() {
		if !t.Allows(key) {
			return fmt.Errorf("%w: %q is not an option of %q", ErrUnexpectedKey, key, t.Label)
		}
	}
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	switch tag := e.Tag(); {
	case tag == "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case tag == "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case tag == "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case tag == "schedule":
		return fmt.Sprintf("%s must be hourly, daily, weekly, monthly or a cron expression", field)
	case strings.Contains(tag, "email"):
		// or-chains report the whole chain as the tag
		return fmt.Sprintf("%s must be \"owner\" or an email address", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
