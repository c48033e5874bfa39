package media

import (
	"media-manager/core/reconcile"
	"media-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Media feature.
func NewFeature(client storage.Client, storageCfg storage.Config, db *gorm.DB, cfg reconcile.Config, logger *zap.Logger) *Feature {
	svc := NewService(client, storageCfg, db, cfg, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "media"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the media service to the CLI.
func (f *Feature) Service() *Service {
	return f.service
}
