// Package archivatest provides an in-process Archiva server for tests.
//
// The server implements the redback login/logout endpoints and the two
// browseService queries used by the client. Sessions are tracked with a
// JSESSIONID cookie, so tests can assert that every login was paired with a
// logout.
//
//	srv := archivatest.New(archivatest.WithUser("admin", "secret"))
//	defer srv.Close()
//	srv.AddVersions("com.example", "lib", "1.0.0", "1.1.0")
package archivatest

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Paths served by the fake, relative to the server URL.
const (
	LoginPath         = "/restServices/redbackServices/loginService/logIn"
	LogoutPath        = "/restServices/redbackServices/loginService/logout"
	VersionsListPath  = "/restServices/archivaServices/browseService/versionsList"
	DownloadInfosPath = "/restServices/archivaServices/browseService/artifactDownloadInfos"
)

// SessionCookie is the name of the cookie carrying the session id.
const SessionCookie = "JSESSIONID"

// Server is a fake Archiva instance backed by httptest.
type Server struct {
	*httptest.Server

	mu             sync.Mutex
	users          map[string]string
	sessions       map[string]string
	versions       map[string]any
	infos          map[string]any
	requireReferer bool
	failNext       *failure
	logins         int
	logouts        int
	queries        int
}

type failure struct {
	status int
	body   string
}

// Option configures a Server.
type Option func(*Server)

// WithUser registers an account that can log in.
func WithUser(user, password string) Option {
	return func(s *Server) { s.users[user] = password }
}

// WithRequiredReferer makes every endpoint reject requests whose Referer
// header is not the server URL.
func WithRequiredReferer() Option {
	return func(s *Server) { s.requireReferer = true }
}

// New starts a Server. The "guest" account with an empty password is always
// registered. Callers must Close the server.
func New(opts ...Option) *Server {
	s := &Server{
		users:    map[string]string{"guest": ""},
		sessions: make(map[string]string),
		versions: make(map[string]any),
		infos:    make(map[string]any),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.checkReferer)

	r.Post(LoginPath, s.handleLogin)
	r.Get(LogoutPath, s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get(VersionsListPath+"/{group}/{name}", s.handleVersionsList)
		r.Get(DownloadInfosPath+"/{group}/{name}/{version}", s.handleDownloadInfos)
	})
	return r
}

// AddVersions registers the versions list returned for group/name.
func (s *Server) AddVersions(group, name string, versions ...string) {
	s.SetVersionsResponse(group, name, map[string]any{"versions": versions})
}

// SetVersionsResponse registers an arbitrary JSON document as the
// versions list response for group/name.
func (s *Server) SetVersionsResponse(group, name string, doc any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[group+"/"+name] = doc
}

// AddDownloadInfos registers the download infos document returned for
// group/name/version.
func (s *Server) AddDownloadInfos(group, name, version string, doc any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infos[group+"/"+name+"/"+version] = doc
}

// FailNext makes the next browse query answer with status and a raw body.
func (s *Server) FailNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = &failure{status: status, body: body}
}

// ExpireSessions drops every active session, as a server restart would.
func (s *Server) ExpireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.sessions)
}

// Logins returns the number of successful logins.
func (s *Server) Logins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logins
}

// Logouts returns the number of logout requests received.
func (s *Server) Logouts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logouts
}

// Queries returns the number of browse queries received.
func (s *Server) Queries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries
}

// ActiveSessions returns the number of sessions not yet logged out.
func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// =============================================================================
// Handlers
// =============================================================================

type loginRequest struct {
	XMLName  xml.Name `xml:"loginRequest"`
	Username string   `xml:"username"`
	Password string   `xml:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := xml.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessages(w, http.StatusBadRequest, "invalid.login.request")
		return
	}

	s.mu.Lock()
	password, ok := s.users[req.Username]
	if !ok || password != req.Password {
		s.mu.Unlock()
		writeErrorMessages(w, http.StatusUnauthorized, "incorrect.username.password")
		return
	}
	id := uuid.NewString()
	s.sessions[id] = req.Username
	s.logins++
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: id, Path: "/", HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]any{
		"username":  req.Username,
		"validated": true,
		"locked":    false,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.logouts++
	if c, err := r.Cookie(SessionCookie); err == nil {
		delete(s.sessions, c.Value)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, true)
}

func (s *Server) handleVersionsList(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "group") + "/" + chi.URLParam(r, "name")
	s.serveDocument(w, s.versions, key)
}

func (s *Server) handleDownloadInfos(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "group") + "/" + chi.URLParam(r, "name") + "/" + chi.URLParam(r, "version")
	s.serveDocument(w, s.infos, key)
}

func (s *Server) serveDocument(w http.ResponseWriter, docs map[string]any, key string) {
	s.mu.Lock()
	s.queries++
	fail := s.failNext
	s.failNext = nil
	doc, ok := docs[key]
	s.mu.Unlock()

	if fail != nil {
		w.WriteHeader(fail.status)
		fmt.Fprint(w, fail.body)
		return
	}
	if !ok {
		writeErrorMessages(w, http.StatusNotFound, "artifact.not.found")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// =============================================================================
// Middleware
// =============================================================================

func (s *Server) checkReferer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.requireReferer && r.Header.Get("Referer") != s.URL {
			writeErrorMessages(w, http.StatusForbidden, "referer.mismatch")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SessionCookie)
		s.mu.Lock()
		_, ok := s.sessions[cookieValue(c, err)]
		s.mu.Unlock()
		if !ok {
			writeErrorMessages(w, http.StatusUnauthorized, "user.not.authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func cookieValue(c *http.Cookie, err error) string {
	if err != nil {
		return ""
	}
	return c.Value
}

func writeErrorMessages(w http.ResponseWriter, status int, keys ...string) {
	msgs := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, map[string]any{"errorKey": k, "args": []string{}})
	}
	writeJSON(w, status, map[string]any{"errorMessages": msgs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
