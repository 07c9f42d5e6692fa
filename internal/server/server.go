package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"prodsearch-backend/internal/agent"
	"prodsearch-backend/internal/config"
	"prodsearch-backend/internal/store"
	"prodsearch-backend/internal/types"
)

// Fixed user-facing fallback replies; gateway failures degrade to these and
// the conversation continues under the same session id.
const (
	transportFallbackReply = "Sorry, I'm having trouble connecting to the service."
	malformedFallbackReply = "Error: Invalid response format."
)

type Server struct {
	router      *chi.Mux
	store       *store.MemoryStore
	agent       *agent.Client
	cfg         config.Config
	suggestions Suggestions
	logger      *zap.Logger
}

func NewServer(cfg config.Config, logger *zap.Logger) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", "X-Client-Id"},
		ExposedHeaders:   []string{"X-Client-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	suggestions, err := LoadSuggestions(cfg.SuggestionsFile)
	if err != nil {
		logger.Warn("using built-in suggestions", zap.String("file", cfg.SuggestionsFile), zap.Error(err))
		suggestions = defaultSuggestions()
	}

	s := &Server{
		router:      r,
		store:       store.NewMemoryStore(),
		agent:       agent.NewClient(cfg.AgentURL, cfg.AgentTimeout, logger),
		cfg:         cfg,
		suggestions: suggestions,
		logger:      logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/chat", s.handleChat)
	s.router.Post("/api/sessions", s.handleNewSession)
	s.router.Get("/api/sessions", s.handleListSessions)
	s.router.Post("/api/sessions/switch", s.handleSwitchSession)
	s.router.Get("/api/transcript", s.handleTranscript)
	s.router.Get("/api/suggestions", s.handleSuggestions)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
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

	cid := s.getOrCreateClientID(w, r)
	session := s.store.Current(cid)
	s.store.EnsureTranscript(cid, session.ID)
	s.store.Append(cid, session.ID, store.Message{Role: store.RoleUser, Content: req.Message})

	reply, resolved, err := s.agent.Query(r.Context(), req.Message, session.ID)
	if err != nil {
		s.logger.Warn("agent query failed", zap.String("session", session.ID), zap.Error(err))
		reply = fallbackReply(err)
		resolved = session.ID
	} else if resolved != session.ID {
		s.logger.Info("gateway resolved a different session id",
			zap.String("local", session.ID), zap.String("resolved", resolved))
	}
	s.store.Append(cid, session.ID, store.Message{Role: store.RoleAssistant, Content: reply})

	s.respondJSON(w, http.StatusOK, types.ChatResponse{
		SessionID:         session.ID,
		ResolvedSessionID: resolved,
		Reply:             reply,
	})
}

// fallbackReply maps a gateway error to its fixed user-facing text.
func fallbackReply(err error) string {
	var malformed *agent.MalformedEnvelopeError
	if errors.As(err, &malformed) {
		return malformedFallbackReply
	}
	return transportFallbackReply
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	cid := s.getOrCreateClientID(w, r)
	s.store.ArchiveCurrent(cid)
	session := s.store.CreateSession(cid)
	s.store.EnsureTranscript(cid, session.ID)
	s.logger.Info("new chat session", zap.String("session", session.ID), zap.String("name", session.Name))
	s.respondJSON(w, http.StatusCreated, toSessionInfo(session))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	cid := s.getOrCreateClientID(w, r)
	history := s.store.History(cid)
	infos := make([]types.SessionInfo, 0, len(history))
	for _, sess := range history {
		infos = append(infos, toSessionInfo(sess))
	}
	s.respondJSON(w, http.StatusOK, types.SessionsResponse{
		Current: toSessionInfo(s.store.Current(cid)),
		History: infos,
	})
}

func (s *Server) handleSwitchSession(w http.ResponseWriter, r *http.Request) {
	var req types.SwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	cid := s.getOrCreateClientID(w, r)
	session, ok := s.store.SwitchSession(cid, req.Name)
	status := http.StatusOK
	if !ok {
		// The active session is retained; the status tells the page the
		// name matched nothing.
		status = http.StatusNotFound
	}
	s.respondJSON(w, status, toSessionInfo(session))
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	cid := s.getOrCreateClientID(w, r)
	session := s.store.Current(cid)
	s.store.EnsureTranscript(cid, session.ID)

	msgs := s.store.Transcript(cid, session.ID)
	out := make([]types.TranscriptMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, types.TranscriptMessage{Role: string(m.Role), Content: m.Content})
	}
	s.respondJSON(w, http.StatusOK, types.TranscriptResponse{
		Session:  toSessionInfo(session),
		Messages: out,
	})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, types.SuggestionsResponse{
		About:   s.suggestions.About,
		Queries: append([]string(nil), s.suggestions.Queries...),
	})
}

func toSessionInfo(sess store.Session) types.SessionInfo {
	return types.SessionInfo{ID: sess.ID, Name: sess.Name, CreatedAt: sess.CreatedAt}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}

// getClientID retrieves the client id from cookie or header.
func getClientID(r *http.Request) string {
	if cookie, err := GetClientCookie(r); err == nil && cookie != "" {
		return cookie
	}
	if cid := r.Header.Get("X-Client-Id"); cid != "" {
		return cid
	}
	return ""
}

// getOrCreateClientID gets the existing client id or mints a new one, setting
// the cookie and echoing the id in a response header.
func (s *Server) getOrCreateClientID(w http.ResponseWriter, r *http.Request) string {
	cid := getClientID(r)
	if cid == "" {
		cid = uuid.NewString()
		s.logger.Debug("new client", zap.String("client", cid), zap.String("endpoint", r.URL.Path))
		SetClientCookie(w, cid)
	}
	w.Header().Set("X-Client-Id", cid)
	return cid
}
