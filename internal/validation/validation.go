// Package validation implements the credential rule checks shared by the
// signup and login flows and by the real-time single-field endpoint.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/itemboard/itemboard-be/internal/apperrors"
)

// Field names as they appear in request payloads and error tags.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

var (
	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	specialRe = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// rule pairs a validator tag with the message reported when it fails.
type rule struct {
	tag     string
	message string
}

var usernameRules = []rule{
	{"min=8", "Username must be at least 8 characters long"},
}

var passwordRules = []rule{
	{"min=8", "Password must be at least 8 characters long"},
	{"haslower", "Password must contain at least one lowercase letter"},
	{"hasupper", "Password must contain at least one uppercase letter"},
	{"hasspecial", "Password must contain at least one special character"},
}

const (
	usernameRequiredMsg = "Username is required"
	passwordRequiredMsg = "Password is required"
	confirmRequiredMsg  = "Confirm password is required"
	confirmMismatchMsg  = "Passwords do not match"
	invalidFieldMsg     = "Invalid field"
)

// Validator checks credential inputs against the registration rules. It is
// stateless and safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the character-class rules registered.
func New() *Validator {
	v := validator.New()

	// Registration cannot fail for a non-nil func.
	_ = v.RegisterValidation("haslower", containsClass(lowerRe))
	_ = v.RegisterValidation("hasupper", containsClass(upperRe))
	_ = v.RegisterValidation("hasspecial", containsClass(specialRe))

	return &Validator{v: v}
}

func containsClass(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// CheckSignup runs the full registration rule set and returns the
// violations ordered username, password, confirmPassword. An empty result
// means the input is valid. The username is trimmed before checking;
// passwords are taken byte-for-byte.
func (cv *Validator) CheckSignup(username, password, confirm string) []apperrors.FieldError {
	var out []apperrors.FieldError

	for _, msg := range cv.checkValue(strings.TrimSpace(username), usernameRequiredMsg, usernameRules, false) {
		out = append(out, apperrors.FieldError{Field: FieldUsername, Message: msg})
	}
	for _, msg := range cv.checkValue(password, passwordRequiredMsg, passwordRules, false) {
		out = append(out, apperrors.FieldError{Field: FieldPassword, Message: msg})
	}
	for _, msg := range cv.checkConfirm(confirm, password, false) {
		out = append(out, apperrors.FieldError{Field: FieldConfirmPassword, Message: msg})
	}

	return out
}

// CheckLogin runs the login subset: both fields present, nothing more.
func (cv *Validator) CheckLogin(username, password string) []apperrors.FieldError {
	var out []apperrors.FieldError

	if cv.v.Var(strings.TrimSpace(username), "required") != nil {
		out = append(out, apperrors.FieldError{Field: FieldUsername, Message: usernameRequiredMsg})
	}
	if cv.v.Var(password, "required") != nil {
		out = append(out, apperrors.FieldError{Field: FieldPassword, Message: passwordRequiredMsg})
	}

	return out
}

// CheckField applies the rule subset for a single field, for real-time
// feedback while the user types. password carries the password value when
// field is confirmPassword.
func (cv *Validator) CheckField(field, value, password string) []string {
	switch field {
	case FieldUsername:
		return cv.checkValue(strings.TrimSpace(value), usernameRequiredMsg, usernameRules, true)
	case FieldPassword:
		return cv.checkValue(value, passwordRequiredMsg, passwordRules, true)
	case FieldConfirmPassword:
		return cv.checkConfirm(value, password, true)
	default:
		return []string{invalidFieldMsg}
	}
}

// checkValue reports every failing rule in order. With bail set, an empty
// value reports the required rule alone — the real-time field path stops
// there, while the signup submission runs the whole chain even on empty
// input.
func (cv *Validator) checkValue(value, requiredMsg string, rules []rule, bail bool) []string {
	var msgs []string
	if cv.v.Var(value, "required") != nil {
		if bail {
			return []string{requiredMsg}
		}
		msgs = append(msgs, requiredMsg)
	}

	for _, r := range rules {
		if cv.v.Var(value, r.tag) != nil {
			msgs = append(msgs, r.message)
		}
	}
	return msgs
}

func (cv *Validator) checkConfirm(confirm, password string, bail bool) []string {
	var msgs []string
	if cv.v.Var(confirm, "required") != nil {
		if bail {
			return []string{confirmRequiredMsg}
		}
		msgs = append(msgs, confirmRequiredMsg)
	}
	if cv.v.VarWithValue(confirm, password, "eqfield") != nil {
		msgs = append(msgs, confirmMismatchMsg)
	}
	return msgs
}
