package leads

import "errors"

// LicenseType is the vendor category a prospect wants to sell.
type LicenseType string

const (
	LicenseMicrosoft LicenseType = "Microsoft"
	LicenseAdobe     LicenseType = "Adobe"
	LicenseOracle    LicenseType = "Oracle"
	LicenseAutodesk  LicenseType = "Autodesk"
	LicenseVMware    LicenseType = "VMware"
	LicenseOther     LicenseType = "Other"
)

// LicenseTypes returns the accepted license types in display order.
func LicenseTypes() []LicenseType {
	return []LicenseType{
		LicenseMicrosoft,
		LicenseAdobe,
		LicenseOracle,
		LicenseAutodesk,
		LicenseVMware,
		LicenseOther,
	}
}

// Valid reports whether t is one of the accepted license types.
func (t LicenseType) Valid() bool {
	for _, known := range LicenseTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Field names, as used in JSON bodies and error maps.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldCompany     = "company"
	FieldLicenseType = "licenseType"
	FieldMessage     = "message"
)

// LeadForm is the lead-capture form on the landing page.
type LeadForm struct {
	Name        string      `json:"name" validate:"notblank"`
	Email       string      `json:"email" validate:"notblank,leademail"`
	Company     string      `json:"company" validate:"notblank"`
	LicenseType LicenseType `json:"licenseType" validate:"licensetype"`
	Message     string      `json:"message" validate:"notblank"`
}

// ErrorMap holds one human-readable message per failing field.
type ErrorMap map[string]string

// Valid reports whether no field failed.
func (e ErrorMap) Valid() bool {
	return len(e) == 0
}

// SubmittedMessage is shown to the user after a clean submission.
const SubmittedMessage = "Form submitted successfully! We will contact you soon."

var ErrUnknownField = errors.New("unknown form field")
