// Package validation implements the request field rules as explicit
// validator functions. Each validator appends Laravel-compatible messages
// to an Errors map so existing API clients keep seeing the exact field
// errors the upstream service produced.
package validation

import (
	"fmt"

	"taskhub/backend/internal/models"
)

// Mode selects between the "required" rule set used on create and the
// "sometimes|required" set used on partial update, where a field is only
// validated when the request supplied it.
type Mode int

const (
	Required Mode = iota
	Sometimes
)

// Errors maps a field name to its list of failure messages.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether at least one field failed.
func (e Errors) Any() bool {
	return len(e) > 0
}

func requiredMessage(field string) string {
	return fmt.Sprintf("The %s field is required.", field)
}

const maxTitleLen = 255

// TaskTitle checks required presence and the 255 character cap.
func TaskTitle(errs Errors, title *string, mode Mode) {
	if title == nil {
		if mode == Required {
			errs.Add("title", requiredMessage("title"))
		}
		return
	}
	if *title == "" {
		errs.Add("title", requiredMessage("title"))
		return
	}
	if len(*title) > maxTitleLen {
		errs.Add("title", fmt.Sprintf("The title field must not be greater than %d characters.", maxTitleLen))
	}
}

func TaskDescription(errs Errors, description *string, mode Mode) {
	if description == nil {
		if mode == Required {
			errs.Add("description", requiredMessage("description"))
		}
		return
	}
	if *description == "" {
		errs.Add("description", requiredMessage("description"))
	}
}

// TaskFinished only checks presence; the JSON binding already guarantees
// a boolean when the field decodes at all.
func TaskFinished(errs Errors, finished *bool, mode Mode) {
	if finished == nil && mode == Required {
		errs.Add("finished", requiredMessage("finished"))
	}
}

// TaskCategory restricts the value to the fixed category enum.
func TaskCategory(errs Errors, category *string, mode Mode) {
	if category == nil {
		if mode == Required {
			errs.Add("category", requiredMessage("category"))
		}
		return
	}
	if *category == "" {
		errs.Add("category", requiredMessage("category"))
		return
	}
	switch *category {
	case models.CategoryWork, models.CategoryPersonal, models.CategoryOther:
	default:
		errs.Add("category", "The selected category is invalid.")
	}
}

func UserName(errs Errors, name *string) {
	if name == nil || *name == "" {
		errs.Add("name", requiredMessage("name"))
	}
}

// UserEmail checks presence only; uniqueness is verified against the user
// store by the auth service, which appends EmailTaken on conflict.
func UserEmail(errs Errors, email *string) {
	if email == nil || *email == "" {
		errs.Add("email", requiredMessage("email"))
	}
}

// EmailTaken is the uniqueness failure for the email field.
func EmailTaken(errs Errors) {
	errs.Add("email", "The email has already been taken.")
}

// UserPassword checks presence and the password_confirmation match.
func UserPassword(errs Errors, password, confirmation *string) {
	if password == nil || *password == "" {
		errs.Add("password", requiredMessage("password"))
		return
	}
	if confirmation == nil || *confirmation != *password {
		errs.Add("password", "The password field confirmation does not match.")
	}
}

// LoginField covers the login form, where both fields are plain required
// strings with no further rules.
func LoginField(errs Errors, field string, value *string) {
	if value == nil || *value == "" {
		errs.Add(field, requiredMessage(field))
	}
}
