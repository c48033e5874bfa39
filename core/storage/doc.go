// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the media library needs: listing, uploading, ranged downloads,
// server-side copies and deletes. This abstraction supports both AWS S3 and
// self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # URLs
//
// Every object is addressed by a public URL (URLMapper). The URL, not the key,
// is what the metadata table stores, so URLMapper.Key must invert URLMapper.URL.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	urls := storage.NewURLMapper(cfg.Storage)
//	u := urls.URL("images/team/jane.png")
package storage
