package archiva

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	archerr "github.com/matzehuels/archiva-cli/pkg/errors"
)

const browsePath = "/restServices/archivaServices/browseService"

// VersionList is the versionsList response exactly as the server returned
// it, e.g. {"versions": ["0.1.0", "0.2.0"]}.
type VersionList map[string]any

// Versions returns the "versions" entry in server order.
func (v VersionList) Versions() []string {
	raw, _ := v["versions"].([]any)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// DownloadInfos is the artifactDownloadInfos response exactly as the server
// returned it. Archiva answers with a list of objects (url, id, size,
// checksums, ...); numbers are kept as [json.Number].
type DownloadInfos = any

// VersionsList returns the versions published for group/name.
//
// Returns:
//   - NOT_AUTHENTICATED if the session is not logged in or the server rejects it
//   - NOT_FOUND if the package does not exist
//   - REMOTE_ERROR for any other non-success response, or a body that is not
//     a JSON object with a "versions" array of strings
//   - CONNECTION_ERROR for transport failures
//   - INVALID_INPUT if group or name is not a safe path segment
func (s *Session) VersionsList(ctx context.Context, group, name string) (VersionList, error) {
	what := "versionsList " + group + "." + name
	data, err := s.browse(ctx, what, "versionsList",
		segment{"group", group}, segment{"name", name})
	if err != nil {
		return nil, err
	}

	var list VersionList
	if err := decode(data, &list); err != nil || list == nil {
		return nil, archerr.Remote(http.StatusOK, truncate(data), "%s: response is not a JSON object", what)
	}
	if !validVersions(list["versions"]) {
		return nil, archerr.Remote(http.StatusOK, truncate(data), "%s: response has no \"versions\" list", what)
	}
	return list, nil
}

// DownloadInfos returns the download metadata of group/name at version.
// Errors are the same as for [Session.VersionsList]; NOT_FOUND also covers
// a missing version.
func (s *Session) DownloadInfos(ctx context.Context, group, name, version string) (DownloadInfos, error) {
	what := "downloadInfos " + group + "." + name + ":" + version
	data, err := s.browse(ctx, what, "artifactDownloadInfos",
		segment{"group", group}, segment{"name", name}, segment{"version", version})
	if err != nil {
		return nil, err
	}

	var infos DownloadInfos
	if err := decode(data, &infos); err != nil {
		return nil, archerr.Remote(http.StatusOK, truncate(data), "%s: response is not valid JSON", what)
	}
	switch infos.(type) {
	case []any, map[string]any:
		return infos, nil
	default:
		return nil, archerr.Remote(http.StatusOK, truncate(data), "%s: unexpected response shape", what)
	}
}

// segment is one named path parameter of a browse query.
type segment struct {
	field string
	value string
}

// browse performs an authenticated GET on a browseService endpoint.
// The session check comes first, so an unauthenticated call fails the same
// way for every input.
func (s *Session) browse(ctx context.Context, what, endpoint string, segments ...segment) ([]byte, error) {
	if !s.authenticated {
		return nil, archerr.New(archerr.ErrCodeNotAuthenticated, "%s: not logged in", what)
	}

	path := browsePath + "/" + endpoint
	for _, seg := range segments {
		if err := archerr.ValidatePathSegment(seg.field, seg.value); err != nil {
			return nil, err
		}
		path += "/" + url.PathEscape(seg.value)
	}

	resp, data, err := s.send(ctx, http.MethodGet, path, nil, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp.StatusCode, data, what); err != nil {
		return nil, err
	}
	return data, nil
}

func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func validVersions(v any) bool {
	items, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range items {
		if _, ok := item.(string); !ok {
			return false
		}
	}
	return true
}
