package archiva

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	archerr "github.com/matzehuels/archiva-cli/pkg/errors"
)

const (
	// DefaultUser is the account used when no user is configured.
	DefaultUser = "guest"

	// DefaultTimeout bounds every request when Config.Timeout is zero.
	DefaultTimeout = 30 * time.Second

	loginPath  = "/restServices/redbackServices/loginService/logIn"
	logoutPath = "/restServices/redbackServices/loginService/logout"
)

// Config holds the settings of a Session. It is copied by [New] and never
// modified afterwards.
type Config struct {
	Host       string        // Base URL including scheme (e.g., "https://archiva.example.com")
	User       string        // Login user; "guest" if empty
	Password   string        // Login password
	SetReferer bool          // Send "Referer: <Host>" with every request
	Timeout    time.Duration // Per-request timeout; DefaultTimeout if zero

	// Logger receives lifecycle messages and logout warnings.
	// Output is discarded if nil.
	Logger *log.Logger

	// HTTPClient is used as a template for the session's client. Its Jar
	// is always replaced by a private cookie jar. Optional.
	HTTPClient *http.Client
}

// Session is one authenticated connection to an Archiva server.
//
// A Session is used by a single flow of control from login to logout and is
// not safe for concurrent use.
type Session struct {
	cfg           Config
	host          string
	client        *http.Client
	logger        *log.Logger
	authenticated bool
}

// New validates cfg and returns an unauthenticated Session.
// No network I/O is performed.
func New(cfg Config) (*Session, error) {
	if err := archerr.ValidateURL(cfg.Host); err != nil {
		return nil, err
	}
	if cfg.User == "" {
		cfg.User = DefaultUser
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	client := &http.Client{}
	if cfg.HTTPClient != nil {
		*client = *cfg.HTTPClient
	}
	client.Timeout = cfg.Timeout
	client.Jar = newJar()

	return &Session{
		cfg:    cfg,
		host:   strings.TrimRight(cfg.Host, "/"),
		client: client,
		logger: logger,
	}, nil
}

// Host returns the normalized base URL of the server.
func (s *Session) Host() string { return s.host }

// User returns the login user.
func (s *Session) User() string { return s.cfg.User }

// Authenticated reports whether Login succeeded and Logout has not run since.
func (s *Session) Authenticated() bool { return s.authenticated }

// Run logs in, calls fn, and logs out. Logout runs exactly once whether fn
// returns an error, succeeds, or panics, and also when Login fails (it is a
// no-op then). The error of Login or fn is returned unchanged.
//
// Logout uses a context detached from ctx's cancellation so that the remote
// session is released even after an interrupt.
func (s *Session) Run(ctx context.Context, fn func(*Session) error) error {
	defer s.release(ctx)
	if err := s.Login(ctx); err != nil {
		return err
	}
	return fn(s)
}

func (s *Session) release(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeout)
	defer cancel()
	s.Logout(ctx)
}

// loginRequest is redback's loginRequest document.
type loginRequest struct {
	XMLName  xml.Name `xml:"loginRequest"`
	Username string   `xml:"username"`
	Password string   `xml:"password"`
}

// errorResponse is the error object Archiva returns on failures.
type errorResponse struct {
	ErrorMessages []struct {
		ErrorKey string `json:"errorKey"`
	} `json:"errorMessages"`
}

// Login authenticates against the redback login service and keeps the
// issued session cookie for subsequent requests.
//
// Returns:
//   - AUTHENTICATION_FAILED if the server rejects the credentials
//   - CONNECTION_ERROR if the host is unreachable or the response is malformed
func (s *Session) Login(ctx context.Context) error {
	body, err := xml.Marshal(loginRequest{Username: s.cfg.User, Password: s.cfg.Password})
	if err != nil {
		return archerr.Wrap(archerr.ErrCodeInvalidInput, err, "encode login request")
	}

	resp, data, err := s.send(ctx, http.MethodPost, loginPath, bytes.NewReader(body), map[string]string{
		"Content-Type": "application/xml",
		"Accept":       "application/json",
	})
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return loginRejected(s.cfg.User, resp.StatusCode, data)
	}

	trimmed := bytes.TrimSpace(data)
	switch string(trimmed) {
	case "", "false", "null":
		return archerr.Response(archerr.ErrCodeAuthentication, resp.StatusCode, string(trimmed),
			"login rejected for user %q", s.cfg.User)
	}
	if !json.Valid(trimmed) {
		return archerr.Response(archerr.ErrCodeConnection, resp.StatusCode, truncate(data),
			"malformed login response from %s", s.host)
	}

	s.authenticated = true
	s.logger.Info("logged in", "user", s.cfg.User, "host", s.host)
	return nil
}

func loginRejected(user string, status int, data []byte) error {
	var er errorResponse
	if err := json.Unmarshal(data, &er); err == nil && len(er.ErrorMessages) > 0 {
		keys := make([]string, 0, len(er.ErrorMessages))
		for _, m := range er.ErrorMessages {
			keys = append(keys, m.ErrorKey)
		}
		return archerr.Response(archerr.ErrCodeAuthentication, status, truncate(data),
			"login rejected for user %q: %s", user, strings.Join(keys, ", "))
	}
	return archerr.Response(archerr.ErrCodeAuthentication, status, truncate(data),
		"login rejected for user %q", user)
}

// Logout releases the remote session and clears the local authenticated
// context. It is a no-op if the session is not authenticated, so calling it
// repeatedly is safe. Server-side failures are logged as warnings.
func (s *Session) Logout(ctx context.Context) {
	if !s.authenticated {
		return
	}
	defer s.reset()

	resp, _, err := s.send(ctx, http.MethodGet, logoutPath, nil, nil)
	if err != nil {
		s.logger.Warn("logout failed", "host", s.host, "err", err)
		return
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("logout rejected", "host", s.host, "status", resp.StatusCode)
		return
	}
	s.logger.Info("logged out", "user", s.cfg.User)
}

func (s *Session) reset() {
	s.authenticated = false
	s.client.Jar = newJar()
}

func newJar() http.CookieJar {
	// cookiejar.New only fails on a bad PublicSuffixList, and none is given.
	jar, _ := cookiejar.New(nil)
	return jar
}
