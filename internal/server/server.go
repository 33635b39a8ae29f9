package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"softsell-backend/internal/chat"
	"softsell-backend/internal/config"
	"softsell-backend/internal/leads"
	"softsell-backend/internal/metrics"
	"softsell-backend/internal/store"
	"softsell-backend/internal/types"
	"softsell-backend/pkg/logging"
)

// Deps are the collaborators a Server is built from. Nil fields get
// defaults derived from the config.
type Deps struct {
	Responder *chat.Responder
	Validator *leads.Validator
	Store     *store.MemoryStore
	Logger    *logging.Logger
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
}

type Server struct {
	router    *chi.Mux
	cfg       config.Config
	responder *chat.Responder
	validator *leads.Validator
	store     *store.MemoryStore
	logger    *logging.Logger
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	upgrader  websocket.Upgrader
	page      *pageRenderer
}

func NewServer(cfg config.Config, deps Deps) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	st := deps.Store
	if st == nil {
		st = store.NewMemoryStore(cfg.MaxTranscript, cfg.SessionTTL)
	}
	st.OnSizeChanged(deps.Metrics.SetActiveSessions)
	responder := deps.Responder
	if responder == nil {
		responder = chat.NewResponder(nil, chat.DefaultPrompt(), logger, deps.Metrics)
	}
	validator := deps.Validator
	if validator == nil {
		validator = leads.NewValidator()
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	page, err := newPageRenderer()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", "X-Session-Id", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s := &Server{
		router:    r,
		cfg:       cfg,
		responder: responder,
		validator: validator,
		store:     st,
		logger:    logger,
		metrics:   deps.Metrics,
		gatherer:  gatherer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
		page: page,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Get("/", s.handlePage)
	s.router.Get("/api/health", s.handleHealth)
	s.router.Delete("/api/session", s.handleEndSession)
	// Chat widget
	s.router.Get("/api/chat", s.handleTranscript)
	s.router.Post("/api/chat", s.handleChat)
	s.router.Post("/api/chat/predefined", s.handlePredefined)
	s.router.Get("/api/chat/ws", s.handleChatWS)
	// Lead form
	s.router.Get("/api/form", s.handleGetForm)
	s.router.Patch("/api/form", s.handleEditForm)
	s.router.Post("/api/form/submit", s.handleSubmitForm)
	s.router.Post("/api/leads", s.handleCreateLead)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
}

func (s *Server) Router() http.Handler { return s.router }

// Store exposes the session store so the caller can run its janitor.
func (s *Server) Store() *store.MemoryStore { return s.store }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	mode := "fallback"
	if s.responder.Online() {
		mode = "online"
	}
	s.writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ok", ChatMode: mode})
}

// DELETE /api/session
// Forgets the caller's transcript and draft form. Unknown ids are a no-op.
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.store.Get(getSessionID(r)); ok {
		s.store.Delete(sess.ID)
		s.logger.Info("session ended",
			"session_id", sess.ID,
			"messages", sess.Transcript.Len(),
		)
	}
	ClearSessionCookie(w, s.cfg.SecureCookie)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.writeJSON(w, http.StatusOK, types.TranscriptResponse{
		SessionID: sess.ID,
		Typing:    sess.Transcript.Typing(),
		Messages:  sess.Transcript.Messages(),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	sess := s.session(w, r)
	res := s.runTurn(r.Context(), sess, chat.KindMessage, req.Message, nil)
	s.writeJSON(w, http.StatusOK, types.ChatResponse{
		SessionID: sess.ID,
		Reply:     res.Text,
		Source:    res.Source,
		Messages:  sess.Transcript.Messages(),
	})
}

func (s *Server) handlePredefined(w http.ResponseWriter, r *http.Request) {
	var req types.PredefinedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		s.writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	sess := s.session(w, r)
	res := s.runTurn(r.Context(), sess, chat.KindPredefined, req.Question, nil)
	s.writeJSON(w, http.StatusOK, types.ChatResponse{
		SessionID: sess.ID,
		Reply:     res.Text,
		Source:    res.Source,
		Messages:  sess.Transcript.Messages(),
	})
}

// runTurn plays one chat turn for the session. Turns of one session run one
// at a time. A turn is not cancelled when the client goes away; it is bounded
// only by the configured chat timeout.
func (s *Server) runTurn(ctx context.Context, sess *store.Session, kind chat.Kind, text string, notify func(chat.Event)) chat.Resolution {
	ctx = context.WithoutCancel(ctx)
	if s.cfg.ChatTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ChatTimeout)
		defer cancel()
	}

	sess.LockTurn()
	defer sess.UnlockTurn()
	res := chat.RunTurn(ctx, sess.Transcript, s.responder, kind, text, notify)
	s.logger.Info("chat turn resolved",
		"session_id", sess.ID,
		"kind", string(kind),
		"source", string(res.Source),
	)
	return res
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, types.ErrorResponse{Error: msg})
}

func newSessionID() string {
	return uuid.NewString()
}

// getSessionID retrieves the session ID from cookie or query parameter/header
func getSessionID(r *http.Request) string {
	if cookie, err := GetSessionCookie(r); err == nil && cookie != "" {
		return cookie
	}
	if sid := r.Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	if sid := r.URL.Query().Get("sessionId"); sid != "" {
		return sid
	}
	return ""
}

// session resolves the caller's session, creating one and setting the cookie
// when the request carries none.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *store.Session {
	sid := getSessionID(r)
	if sid == "" {
		sid = newSessionID()
		s.logger.Debug("creating session", "session_id", sid, "path", r.URL.Path)
		SetSessionCookie(w, sid, s.cfg.SecureCookie)
	}
	w.Header().Set("X-Session-Id", sid)
	return s.store.GetOrCreate(sid)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		// Same host as the page itself.
		return strings.EqualFold(strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://"), r.Host)
	}
}
