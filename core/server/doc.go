// Package server holds the HTTP server configuration.
//
// While the cmd package handles the server startup, this package defines the
// listening port, the API key guarding the admin endpoints and the request
// body limit that bounds uploads.
package server
