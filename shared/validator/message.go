package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const fallbackMessage = "{field} is invalid"

var messages = map[string]string{
	"required": "{field} is required",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"max":      "{field} must be less than or equal to {param}",
	"oneof":    "{field} must be one of {param}",
	"email":    "{field} must be a valid email address",
	"url":      "{field} must be a valid URL",
	"uuid":     "{field} must be a valid UUID",
	"unique":   "{field} must not contain duplicates",
	"gtefield": "{field} must be greater than or equal to {param}",
	"nefield":  "{field} must differ from {param}",
	"datetime": "{field} must match the format {param}",

	"dateonly":    "{field} must be a date in YYYY-MM-DD format",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
	"timeslot":    "{field} must be one of morning evening night full_day",
}

// message renders the first failed rule of err for clients. Unknown rules get a generic
// sentence naming the field.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return err.Error()
	}

	first := valErrors[0]

	template, ok := messages[first.Tag()]
	if !ok {
		template = fallbackMessage
	}

	return strings.NewReplacer("{field}", first.Field(), "{param}", first.Param()).Replace(template)
}
