package integrity

import (
	"context"
	"testing"

	"media-manager/core/database"
	"media-manager/core/reconcile"
	"media-manager/core/storage"
	"media-manager/core/storage/mocks"
	"media-manager/feature/media/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testStorage = storage.Config{Bucket: "test-bucket", Region: "us-east-1"}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Media{}))
	return db
}

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestService_Structure(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, testStorage, []string{"images", "videos"}, nil, zap.NewNop())

	t.Run("CheckStructure", func(t *testing.T) {
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyListing())

		report, err := svc.CheckStructure(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"images", "videos"}, report.Missing)
	})

	t.Run("FixStructure", func(t *testing.T) {
		mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		report, err := svc.CheckStructure(context.Background())
		require.NoError(t, err)
		require.NoError(t, svc.FixStructure(context.Background(), report))
		mockClient.AssertCalled(t, "PutObject", mock.Anything, "test-bucket", "images/.keep", mock.Anything, int64(0), mock.Anything)
		mockClient.AssertCalled(t, "PutObject", mock.Anything, "test-bucket", "videos/.keep", mock.Anything, int64(0), mock.Anything)
	})
}

func TestService_Schema(t *testing.T) {
	t.Run("Matched", func(t *testing.T) {
		svc := NewService(new(mocks.Client), testStorage, nil, setupDB(t), zap.NewNop())
		report, err := svc.CheckSchema()
		require.NoError(t, err)
		assert.True(t, report.Matched)
	})

	t.Run("No Database", func(t *testing.T) {
		svc := NewService(new(mocks.Client), testStorage, nil, nil, zap.NewNop())
		_, err := svc.CheckSchema()
		assert.ErrorIs(t, err, reconcile.ErrMetadataUnavailable)
	})
}
