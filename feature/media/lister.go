package media

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"media-manager/core/asset"
	"media-manager/core/reconcile"
	"media-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// Lister enumerates media objects in the bucket.
type Lister struct {
	client storage.Client
	bucket string
	urls   storage.URLMapper
}

// NewLister creates a Lister for bucket, building URLs with urls.
func NewLister(client storage.Client, bucket string, urls storage.URLMapper) *Lister {
	return &Lister{client: client, bucket: bucket, urls: urls}
}

// List returns every media object under prefix, placeholders excluded.
func (l *Lister) List(ctx context.Context, prefix string) ([]asset.StorageObject, error) {
	objects, _, err := l.Scan(ctx, prefix)
	return objects, err
}

// Scan returns every media object under prefix, plus the folders that only
// exist through placeholder objects. The listing is drained completely; any
// error discards everything read so far.
func (l *Lister) Scan(ctx context.Context, prefix string) ([]asset.StorageObject, []string, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}

	var (
		objects = make([]asset.StorageObject, 0)
		folders []string
	)

	for obj := range l.client.ListObjects(ctx, l.bucket, opts) {
		if obj.Err != nil {
			return nil, nil, fmt.Errorf("%w: list %s/%s: %w", reconcile.ErrStorageUnavailable, l.bucket, prefix, obj.Err)
		}

		if asset.IsFolderMarker(obj.Key) {
			if folder := markerFolder(obj.Key); folder != "" {
				folders = append(folders, folder)
			}
			continue
		}

		objects = append(objects, asset.StorageObject{
			Key:         obj.Key,
			URL:         l.urls.URL(obj.Key),
			Size:        obj.Size,
			ContentType: contentType(obj),
			UploadedAt:  obj.LastModified,
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: list %s/%s: %w", reconcile.ErrStorageUnavailable, l.bucket, prefix, err)
	}

	return objects, folders, nil
}

func markerFolder(key string) string {
	if strings.HasSuffix(key, "/") {
		return strings.Trim(key, "/")
	}
	folder, _ := asset.SplitKey(key)
	return folder
}

// contentType prefers what the backend reports and falls back to the
// extension, since plain listings usually carry no content type.
func contentType(obj minio.ObjectInfo) string {
	if obj.ContentType != "" {
		return obj.ContentType
	}
	ext := asset.Normalize(obj.Key, "").Extension
	if ext == "" {
		return "application/octet-stream"
	}
	if ct := mime.TypeByExtension("." + ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
