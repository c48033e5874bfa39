// Package loader registers HTTP features and mounts their routes.
//
// A feature is anything that owns a route group: 'media' serves the library
// and its audit endpoints, 'integrity' the health checks. cmd/start builds
// each feature from the shared storage client, database handle and config,
// registers it with a Manager and calls LoadAll once the global middleware
// is in place. Disabled features are skipped and logged.
package loader
