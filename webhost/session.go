package webhost

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/truora/identity-bridge/bridge"
)

// Session is one hosted surface: the content loaded by a bridge plus the
// delivery hook its messages are forwarded to. It implements bridge.Host.
//
// A session holds either rendered HTML (validation mode) or a redirect URL
// (digital identity mode), whichever Load call the bridge made last.
type Session struct {
	ID string

	mu          sync.Mutex
	html        string
	redirectURL string
	deliver     func(bridge.RawMessage)
}

var _ bridge.Host = (*Session)(nil)

func (s *Session) LoadHTML(html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.html = html
	s.redirectURL = ""
	return nil
}

func (s *Session) LoadURL(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirectURL = url
	s.html = ""
	return nil
}

// Bind installs the handler inbound messages are forwarded to, normally
// Bridge.HandleMessage. Messages arriving before Bind are dropped here for
// the same reason the router drops them: there is nobody to deliver to.
func (s *Session) Bind(handler func(bridge.RawMessage)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliver = handler
}

func (s *Session) forward(msg bridge.RawMessage) {
	s.mu.Lock()
	handler := s.deliver
	s.mu.Unlock()
	if handler != nil {
		handler(msg)
	}
}

func (s *Session) content() (html string, redirectURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.html, s.redirectURL
}

// NewSession registers a hosted session with the configured TTL and returns
// it. The caller wires it to a bridge:
//
//	sess, _ := srv.NewSession()
//	b := bridge.New(sess, bridge.Options{Metrics: srv.Metrics})
//	sess.Bind(b.HandleMessage)
func (s *Server) NewSession() (*Session, error) {
	sess := &Session{ID: uuid.New().String()}
	if err := s.sessions.SetEx(context.Background(), sess.ID, sess, s.sessionTTL); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Server) lookupSession(r *http.Request) (*Session, bool) {
	id := chi.URLParam(r, "sessionID")
	if id == "" {
		return nil, false
	}
	sess, ok, err := s.sessions.Get(r.Context(), id)
	if err != nil || !ok {
		return nil, false
	}
	return sess, true
}

func (s *Server) contentHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(r)
	if !ok {
		http.Error(w, "unknown or expired session", http.StatusNotFound)
		return
	}

	html, redirectURL := sess.content()
	switch {
	case redirectURL != "":
		http.Redirect(w, r, redirectURL, http.StatusFound)
	case html != "":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
	default:
		http.Error(w, "session has no content", http.StatusConflict)
	}
}
