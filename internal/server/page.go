package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"softsell-backend/internal/chat"
	"softsell-backend/internal/leads"
)

//go:embed web/index.html
var webFS embed.FS

type pageData struct {
	Year         int
	Greeting     string
	Unavailable  string
	LicenseTypes []leads.LicenseType
	Questions    []string
}

type pageRenderer struct {
	tmpl *template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	tmpl, err := template.ParseFS(webFS, "web/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &pageRenderer{tmpl: tmpl}, nil
}

func (p *pageRenderer) render(now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	err := p.tmpl.Execute(&buf, pageData{
		Year:         now.Year(),
		Greeting:     chat.Greeting,
		Unavailable:  chat.Unavailable,
		LicenseTypes: leads.LicenseTypes(),
		Questions:    chat.PredefinedQuestions(),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GET /
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	body, err := s.page.render(time.Now())
	if err != nil {
		s.logger.Error("failed to render page", "error", err)
		s.writeError(w, http.StatusInternalServerError, "page unavailable")
		return
	}
	// Make sure the visitor has a session before the widget calls the API.
	s.session(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
