package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aleister1102/commitsentry/internal/common/errorwrapper"
	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()
	registerCustomValidations(validate)

	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			messages := make([]string, 0, len(errs))
			for _, e := range errs {
				msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", trimNamespace(e.StructNamespace()), e.Tag())
				if e.Param() != "" {
					msg += fmt.Sprintf(" (expected: %s)", e.Param())
				}
				if e.Value() != nil && e.Value() != "" {
					msg += fmt.Sprintf(", actual: '%v'", e.Value())
				}
				messages = append(messages, msg)
			}
			return fmt.Errorf("%w: configuration validation failed:\n  %s",
				errorwrapper.ErrInvalidConfiguration, strings.Join(messages, "\n  "))
		}
		return fmt.Errorf("configuration validation error: %w", err)
	}

	if cfg.NotificationConfig.Backend == BackendDiscord && cfg.NotificationConfig.DiscordWebhookURL == "" {
		return errorwrapper.NewValidationError("notification_config.discord_webhook_url", "",
			"webhook url is required for the discord backend")
	}
	return nil
}

func registerCustomValidations(validate *validator.Validate) {
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("backend", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", BackendDesktop, BackendConsole, BackendDiscord:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("matchmode", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", FolderMatchSubstring, FolderMatchSegment:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("sound", func(fl validator.FieldLevel) bool {
		id := fl.Field().String()
		return id == "" || models.IsKnownSound(id)
	})
}

// trimNamespace drops the root struct name, "GlobalConfig.EngineConfig.BatchSize" -> "EngineConfig.BatchSize".
func trimNamespace(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
