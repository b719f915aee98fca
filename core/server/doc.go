// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the configuration structure for the listen port, the API key and the
// bounds applied to record listings.
package server
