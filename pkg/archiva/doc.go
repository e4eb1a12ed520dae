// Package archiva provides an authenticated client for a subset of the
// Apache Archiva REST API.
//
// # Overview
//
// A [Session] owns one authenticated HTTP context (a cookie jar holding the
// JSESSIONID issued by the redback login service) and exposes two read-only
// browse queries:
//
//   - [Session.VersionsList]: versions published for a package
//   - [Session.DownloadInfos]: download metadata for one package version
//
// Results are passed through exactly as the server returned them.
//
// # Session Lifecycle
//
// [Session.Run] is the scoped way to use a session: it logs in, runs the
// callback, and always logs out, even when the callback fails or panics:
//
//	sess, err := archiva.New(archiva.Config{
//	    Host:     "https://archiva.example.com",
//	    User:     "deployer",
//	    Password: os.Getenv("ARCHIVA_PWD"),
//	})
//	if err != nil {
//	    return err
//	}
//	err = sess.Run(ctx, func(s *archiva.Session) error {
//	    list, err := s.VersionsList(ctx, "com.example", "lib")
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(list.Versions())
//	    return nil
//	})
//
// Manual [Session.Login] / [Session.Logout] pairing is also supported.
// Logout is idempotent and never fails; problems are logged as warnings.
//
// # Errors
//
// Every error carries a code from [errors]: CONNECTION_ERROR,
// AUTHENTICATION_FAILED, NOT_AUTHENTICATED, NOT_FOUND, REMOTE_ERROR or
// INVALID_INPUT. Use [errors.Is] to branch on them.
//
// [errors]: github.com/matzehuels/archiva-cli/pkg/errors
// [errors.Is]: github.com/matzehuels/archiva-cli/pkg/errors.Is
package archiva
