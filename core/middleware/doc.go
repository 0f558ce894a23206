// Package middleware groups the Fiber middleware used by the server.
//
//   - auth: rejects requests that lack the configured API key.
//   - rayid: tags every request with an id stored in locals and echoed in the
//     X-Ray-ID response header, for log correlation.
package middleware
