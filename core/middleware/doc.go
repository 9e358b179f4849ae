// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the sync endpoints.
//   - rayid: a unique request id (RayID) per request, stored in the context
//     locals and echoed in the response headers for tracing.
//
// Register rayid first so every later log line can carry the id.
package middleware
