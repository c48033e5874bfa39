// Package middleware groups the fiber middleware shared by every feature.
//
// rayid tags each request with an X-Ray-ID (reusing a caller-supplied one)
// so handler logs can be correlated through logger.WithRayID. auth guards
// the API with a static key sent as X-API-Key or a bearer token. Swagger is
// registered before auth and stays public.
package middleware
