// Package integrity provides infrastructure health checks for the media library.
//
// Unlike the 'media' package, which reconciles individual blobs against
// metadata rows, this package validates the structural requirements both
// sides depend on.
//
// # Checks Provided
//
//   - Structure: the bucket exists and every required top-level folder
//     (images, videos, uploads by default) holds at least one object.
//     Fixing creates the bucket and writes a .keep marker per folder.
//   - Schema: every column of the media model exists in the connected
//     database. Explicit column types are compared loosely.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check.
package integrity
