package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"media-manager/core/asset"
	"media-manager/core/reconcile"
	"media-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StructureReport is the result of a bucket structure check.
type StructureReport struct {
	Bucket       string   `json:"bucket"`
	BucketExists bool     `json:"bucket_exists"`
	Missing      []string `json:"missing"`
}

// OK reports whether nothing needs fixing.
func (r StructureReport) OK() bool {
	return r.BucketExists && len(r.Missing) == 0
}

// CheckStructure reports which of the required folders have no objects.
func CheckStructure(ctx context.Context, client storage.Client, bucket string, required []string) (*StructureReport, error) {
	report := &StructureReport{Bucket: bucket, Missing: []string{}}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check bucket existence: %w", reconcile.ErrStorageUnavailable, err)
	}
	if !exists {
		report.Missing = append(report.Missing, required...)
		return report, nil
	}
	report.BucketExists = true

	for _, folder := range required {
		folder = strings.Trim(folder, "/")
		if folder == "" {
			continue
		}

		found, err := hasObjects(ctx, client, bucket, folder)
		if err != nil {
			return nil, err
		}
		if !found {
			report.Missing = append(report.Missing, folder)
		}
	}

	return report, nil
}

// hasObjects reports whether anything is stored below folder. The listing is
// cancelled once the first object arrives so minio stops paging.
func hasObjects(ctx context.Context, client storage.Client, bucket, folder string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{
		Prefix:    folder + "/",
		Recursive: false,
		MaxKeys:   1,
	}

	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return false, fmt.Errorf("%w: failed to list %s: %w", reconcile.ErrStorageUnavailable, folder, obj.Err)
		}
		return true, nil
	}
	return false, nil
}

// FixStructure creates the bucket if needed and writes a placeholder into
// every missing folder.
func FixStructure(ctx context.Context, client storage.Client, report *StructureReport, region string, logger *zap.Logger) error {
	if !report.BucketExists {
		if err := client.MakeBucket(ctx, report.Bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("%w: failed to create bucket %s: %w", reconcile.ErrStorageUnavailable, report.Bucket, err)
		}
		logger.Info("Created missing bucket", zap.String("bucket", report.Bucket))
	}

	for _, folder := range report.Missing {
		key := folder + "/" + asset.FolderMarker
		_, err := client.PutObject(ctx, report.Bucket, key, bytes.NewReader(nil), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return fmt.Errorf("%w: failed to create folder %s: %w", reconcile.ErrStorageUnavailable, folder, err)
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
