// Package server holds the HTTP server configuration.
//
// The start command embeds these settings to bind the Fiber app and to
// configure API key protection of the sync endpoints.
package server
