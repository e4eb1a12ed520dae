package archiva

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/archiva-cli/pkg/buildinfo"
	archerr "github.com/matzehuels/archiva-cli/pkg/errors"
	"github.com/matzehuels/archiva-cli/pkg/observability"
)

// maxErrorBody caps the response body attached to errors.
const maxErrorBody = 4 << 10

// send issues one request against the server and reads the whole response
// body. The response body is already closed when send returns.
//
// Transport failures (including timeouts and body read errors) are returned
// as CONNECTION_ERROR; the caller interprets the status code.
func (s *Session) send(ctx context.Context, method, path string, body io.Reader, headers map[string]string) (*http.Response, []byte, error) {
	url := s.host + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, archerr.Wrap(archerr.ErrCodeInvalidInput, err, "build request %s %s", method, url)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if s.cfg.SetReferer {
		req.Header.Set("Referer", s.host)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := s.client.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, req.URL.Host, req.URL.Path, err)
		return nil, nil, archerr.Wrap(archerr.ErrCodeConnection, err, "%s %s", method, url)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		hooks.OnError(ctx, method, req.URL.Host, req.URL.Path, err)
		return nil, nil, archerr.Wrap(archerr.ErrCodeConnection, err, "read response of %s %s", method, url)
	}
	hooks.OnResponse(ctx, method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))
	return resp, data, nil
}

// checkStatus maps a non-success query response to the error taxonomy.
// what describes the queried resource for the message.
func checkStatus(status int, data []byte, what string) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound:
		return archerr.Response(archerr.ErrCodeNotFound, status, truncate(data), "%s not found", what)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return archerr.Response(archerr.ErrCodeNotAuthenticated, status, truncate(data),
			"%s: session rejected by server", what)
	default:
		return archerr.Remote(status, truncate(data), "%s failed", what)
	}
}

func truncate(data []byte) string {
	if len(data) > maxErrorBody {
		return string(data[:maxErrorBody]) + "..."
	}
	return string(data)
}
