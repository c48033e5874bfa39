package integrity

import (
	"context"
	"fmt"

	"media-manager/core/reconcile"
	"media-manager/core/storage"
	"media-manager/feature/integrity/checks"
	"media-manager/feature/media/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client   storage.Client
	bucket   string
	region   string
	required []string
	db       *gorm.DB
	logger   *zap.Logger
}

// NewService creates a new integrity service. db may be nil, in which case
// the schema check reports the metadata store as unavailable.
func NewService(client storage.Client, storageCfg storage.Config, required []string, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		bucket:   storageCfg.Bucket,
		region:   storageCfg.Region,
		required: required,
		db:       db,
		logger:   logger,
	}
}

// CheckStructure reports the bucket and required folders.
func (s *Service) CheckStructure(ctx context.Context) (*checks.StructureReport, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.required)
}

// FixStructure creates what the report lists as missing.
func (s *Service) FixStructure(ctx context.Context, report *checks.StructureReport) error {
	return checks.FixStructure(ctx, s.client, report, s.region, s.logger)
}

// CheckSchema compares the media model against the live table.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, fmt.Errorf("%w: database not configured", reconcile.ErrMetadataUnavailable)
	}
	report, err := checks.CheckSchema(s.db, &models.Media{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", reconcile.ErrMetadataUnavailable, err)
	}
	return report, nil
}
