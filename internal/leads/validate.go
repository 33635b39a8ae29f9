package leads

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailChar is any character but '@' and whitespace, including the Unicode
// spaces that RE2's \s does not cover.
const emailChar = `[^\s\p{Z}\v\x{85}\x{FEFF}@]`

var emailPattern = regexp.MustCompile(`^` + emailChar + `+@` + emailChar + `+\.` + emailChar + `+$`)

// messages maps a failing (field, tag) pair to the text shown next to the field.
var messages = map[string]map[string]string{
	FieldName:        {"notblank": "Name is required"},
	FieldEmail:       {"notblank": "Email is required", "leademail": "Please enter a valid email"},
	FieldCompany:     {"notblank": "Company is required"},
	FieldLicenseType: {"licensetype": "Please select a license type"},
	FieldMessage:     {"notblank": "Message is required"},
}

// Validator checks lead forms. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds a validator with the lead form rules registered.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("leademail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("licensetype", func(fl validator.FieldLevel) bool {
		return LicenseType(fl.Field().String()).Valid()
	})
	return &Validator{v: v}
}

// Validate runs every rule against form and returns the failures keyed by
// field. All fields are checked; an empty map means the form is valid.
func (val *Validator) Validate(form LeadForm) ErrorMap {
	out := ErrorMap{}
	err := val.v.Struct(form)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable for non-struct input; treat every field as missing.
		return ErrorMap{
			FieldName:        messages[FieldName]["notblank"],
			FieldEmail:       messages[FieldEmail]["notblank"],
			FieldCompany:     messages[FieldCompany]["notblank"],
			FieldLicenseType: messages[FieldLicenseType]["licensetype"],
			FieldMessage:     messages[FieldMessage]["notblank"],
		}
	}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if msg, ok := messages[field][fe.Tag()]; ok {
			out[field] = msg
		}
	}
	return out
}
