package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() LeadForm {
	return LeadForm{
		Name:        "Ada Lovelace",
		Email:       "a@b.co",
		Company:     "Analytical Engines Ltd",
		LicenseType: LicenseAdobe,
		Message:     "We have 40 unused Creative Cloud seats.",
	}
}

func TestValidate_EmptyFormReportsEveryField(t *testing.T) {
	errs := NewValidator().Validate(LeadForm{})

	assert.Equal(t, ErrorMap{
		FieldName:        "Name is required",
		FieldEmail:       "Email is required",
		FieldCompany:     "Company is required",
		FieldLicenseType: "Please select a license type",
		FieldMessage:     "Message is required",
	}, errs)
	assert.False(t, errs.Valid())
}

func TestValidate_OnlyBadEmail(t *testing.T) {
	errs := NewValidator().Validate(LeadForm{
		Name:        "A",
		Email:       "bad",
		Company:     "B",
		LicenseType: LicenseAdobe,
		Message:     "hi",
	})

	assert.Equal(t, ErrorMap{FieldEmail: "Please enter a valid email"}, errs)
}

func TestValidate_ValidForm(t *testing.T) {
	errs := NewValidator().Validate(validForm())

	assert.Empty(t, errs)
	assert.True(t, errs.Valid())
}

func TestValidate_WhitespaceIsBlank(t *testing.T) {
	form := validForm()
	form.Name = "   "
	form.Company = "\t"
	form.Message = "\n "

	errs := NewValidator().Validate(form)

	assert.Equal(t, ErrorMap{
		FieldName:    "Name is required",
		FieldCompany: "Company is required",
		FieldMessage: "Message is required",
	}, errs)
}

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"a@b.co", ""},
		{"first.last@sub.example.com", ""},
		{"user+tag@example.io", ""},
		{"   ", "Email is required"},
		{"plainaddress", "Please enter a valid email"},
		{"a@b", "Please enter a valid email"},
		{"a@@b.co", "Please enter a valid email"},
		{"a b@c.co", "Please enter a valid email"},
		{"@b.co", "Please enter a valid email"},
		{"a@b.", "Please enter a valid email"},
		{" a@b.co", "Please enter a valid email"},
		{"a\u00a0b@c.co", "Please enter a valid email"},
		{"a@b\u2003x.co", "Please enter a valid email"},
		{"a\vb@c.co", "Please enter a valid email"},
		{"a@b.c\u3000o", "Please enter a valid email"},
		{"a\ufeffb@c.co", "Please enter a valid email"},
		{"a@b.co\u2028", "Please enter a valid email"},
		{"jos\u00e9@b\u00fccher.de", ""},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			form := validForm()
			form.Email = tt.email
			errs := v.Validate(form)
			assert.Equal(t, tt.want, errs[FieldEmail])
		})
	}
}

func TestValidate_LicenseType(t *testing.T) {
	v := NewValidator()
	for _, lt := range LicenseTypes() {
		form := validForm()
		form.LicenseType = lt
		assert.Empty(t, v.Validate(form), "license type %s", lt)
	}

	form := validForm()
	form.LicenseType = "Shareware"
	assert.Equal(t, ErrorMap{FieldLicenseType: "Please select a license type"}, v.Validate(form))
}

func TestLicenseTypesOrder(t *testing.T) {
	assert.Equal(t, []LicenseType{"Microsoft", "Adobe", "Oracle", "Autodesk", "VMware", "Other"}, LicenseTypes())
}
