package leads

import (
	"fmt"
	"sync"
)

// FormState is a visitor's in-progress lead form: the values typed so far
// and the errors from the last submit attempt.
type FormState struct {
	mu     sync.Mutex
	values LeadForm
	errors ErrorMap
}

// Snapshot is a point-in-time copy of a FormState.
type Snapshot struct {
	Values LeadForm `json:"values"`
	Errors ErrorMap `json:"errors"`
}

func NewFormState() *FormState {
	return &FormState{errors: ErrorMap{}}
}

// Edit sets one field and clears that field's error. Other errors stay.
func (f *FormState) Edit(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editLocked(field, value)
}

func (f *FormState) editLocked(field, value string) error {
	switch field {
	case FieldName:
		f.values.Name = value
	case FieldEmail:
		f.values.Email = value
	case FieldCompany:
		f.values.Company = value
	case FieldLicenseType:
		f.values.LicenseType = LicenseType(value)
	case FieldMessage:
		f.values.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	delete(f.errors, field)
	return nil
}

// Apply edits every field of form, in field order.
func (f *FormState) Apply(form LeadForm) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applyLocked(form)
}

func (f *FormState) applyLocked(form LeadForm) {
	_ = f.editLocked(FieldName, form.Name)
	_ = f.editLocked(FieldEmail, form.Email)
	_ = f.editLocked(FieldCompany, form.Company)
	_ = f.editLocked(FieldLicenseType, string(form.LicenseType))
	_ = f.editLocked(FieldMessage, form.Message)
}

// Submit re-validates the whole form. On success the form is reset to empty
// and the submitted values are returned; on failure the errors are kept for
// display and the values are left untouched.
func (f *FormState) Submit(v *Validator) (LeadForm, ErrorMap, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitLocked(v)
}

// SubmitWith applies form and submits it as one step, so no other edit can
// land in between.
func (f *FormState) SubmitWith(form LeadForm, v *Validator) (LeadForm, ErrorMap, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applyLocked(form)
	return f.submitLocked(v)
}

func (f *FormState) submitLocked(v *Validator) (LeadForm, ErrorMap, bool) {
	submitted := f.values
	errs := v.Validate(submitted)
	if !errs.Valid() {
		f.errors = errs
		return submitted, copyErrors(errs), false
	}
	f.values = LeadForm{}
	f.errors = ErrorMap{}
	return submitted, ErrorMap{}, true
}

func (f *FormState) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{Values: f.values, Errors: copyErrors(f.errors)}
}

func copyErrors(in ErrorMap) ErrorMap {
	out := make(ErrorMap, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
