package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"softsell-backend/internal/leads"
	"softsell-backend/internal/types"
)

// GET /api/form
// Returns the visitor's draft form with any errors from the last submit.
func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.writeJSON(w, http.StatusOK, types.FormResponse{SessionID: sess.ID, Form: sess.Form.Snapshot()})
}

// PATCH /api/form { field, value }
// Sets one field and clears that field's error.
func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	var req types.FieldEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sess := s.session(w, r)
	if err := sess.Form.Edit(req.Field, req.Value); err != nil {
		if errors.Is(err, leads.ErrUnknownField) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, "failed to update form")
		return
	}
	s.writeJSON(w, http.StatusOK, types.FormResponse{SessionID: sess.ID, Form: sess.Form.Snapshot()})
}

// POST /api/form/submit [LeadForm]
// An optional body replaces every draft field before validation. An empty
// body or a JSON null submits the draft as it stands.
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	body, hasBody, err := decodeOptionalForm(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sess := s.session(w, r)

	var (
		submitted leads.LeadForm
		errs      leads.ErrorMap
		ok        bool
	)
	if hasBody {
		submitted, errs, ok = sess.Form.SubmitWith(body, s.validator)
	} else {
		submitted, errs, ok = sess.Form.Submit(s.validator)
	}
	s.metrics.ObserveLeadSubmission(ok)
	if !ok {
		s.writeJSON(w, http.StatusUnprocessableEntity, types.SubmitResponse{
			Submitted: false,
			Form:      leads.Snapshot{Values: submitted, Errors: errs},
		})
		return
	}
	s.acknowledgeLead(sess.ID, submitted)
	s.writeJSON(w, http.StatusOK, types.SubmitResponse{
		Submitted: true,
		Message:   leads.SubmittedMessage,
		Form:      leads.Snapshot{Values: leads.LeadForm{}, Errors: leads.ErrorMap{}},
	})
}

// decodeOptionalForm reads a LeadForm body. An empty body or a literal null
// reports hasBody false.
func decodeOptionalForm(body io.Reader) (leads.LeadForm, bool, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return leads.LeadForm{}, false, nil
		}
		return leads.LeadForm{}, false, err
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return leads.LeadForm{}, false, nil
	}
	var form leads.LeadForm
	if err := json.Unmarshal(raw, &form); err != nil {
		return leads.LeadForm{}, false, err
	}
	return form, true, nil
}

// POST /api/leads LeadForm
// Validates a complete form without touching any session draft.
func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var form leads.LeadForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	errs := s.validator.Validate(form)
	s.metrics.ObserveLeadSubmission(errs.Valid())
	if !errs.Valid() {
		s.writeJSON(w, http.StatusUnprocessableEntity, types.LeadResponse{Submitted: false, Errors: errs})
		return
	}
	s.acknowledgeLead("", form)
	s.writeJSON(w, http.StatusOK, types.LeadResponse{Submitted: true, Message: leads.SubmittedMessage})
}

// acknowledgeLead records an accepted lead. Leads are not forwarded anywhere.
func (s *Server) acknowledgeLead(sessionID string, form leads.LeadForm) {
	s.logger.Info("lead accepted",
		"session_id", sessionID,
		"company", form.Company,
		"license_type", string(form.LicenseType),
	)
}
