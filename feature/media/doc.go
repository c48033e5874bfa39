// Package media is the media library feature: listing, auditing, repairing,
// uploading and editing media.
//
// Storage and the metadata table are adapted to the reconcile engine by
// Lister and Store. The HTTP layer maps reconcile.ErrStorageUnavailable and
// reconcile.ErrMetadataUnavailable to 503, ErrNotFound to 404 and
// ErrInvalidInput to 400. Drift is a normal 200 response.
package media
