package media_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"regexp"
	"testing"
	"time"

	"media-manager/core/asset"
	"media-manager/core/reconcile"
	"media-manager/core/storage/mocks"
	"media-manager/feature/media"
	"media-manager/feature/media/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const baseURL = "http://localhost:9000/media"

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newService(t *testing.T, db *gorm.DB) (*media.Service, *mocks.Client) {
	t.Helper()
	client := new(mocks.Client)
	return media.NewService(client, testStorage, db, reconcile.Config{}, zap.NewNop()), client
}

func listing(client *mocks.Client, objects ...minio.ObjectInfo) {
	client.On("ListObjects", mock.Anything, "media", mock.Anything).
		Return(func(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
			return mocks.ObjectChannel(objects...)
		})
}

func TestService_AuditObjectWithoutRecord(t *testing.T) {
	svc, client := newService(t, setupDB(t))
	listing(client, minio.ObjectInfo{Key: "images/x.png", Size: 100})

	plan, err := svc.Audit(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusOutOfSync, plan.Summary.SyncStatus)
	require.Len(t, plan.MissingInDatabase, 1)
	assert.Equal(t, baseURL+"/images/x.png", plan.MissingInDatabase[0].URL)
	assert.Equal(t, int64(100), plan.MissingInDatabase[0].Size)
	assert.Empty(t, plan.MissingInStorage)
}

func TestService_AuditRecordWithoutObject(t *testing.T) {
	db := setupDB(t)
	seed(t, db, models.Media{URL: "b", Folder: "images"})
	svc, client := newService(t, db)
	listing(client)

	plan, err := svc.Audit(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusOutOfSync, plan.Summary.SyncStatus)
	assert.Empty(t, plan.MissingInDatabase)
	require.Len(t, plan.MissingInStorage, 1)
	assert.Equal(t, "b", plan.MissingInStorage[0].URL)
	assert.Equal(t, 1, plan.Summary.TotalDBImages)
}

func TestService_AuditStorageDown(t *testing.T) {
	svc, client := newService(t, setupDB(t))
	listing(client, minio.ObjectInfo{Err: errors.New("dial tcp: connection refused")})

	_, err := svc.Audit(context.Background(), "")
	assert.ErrorIs(t, err, reconcile.ErrStorageUnavailable)
}

func TestService_ListJoinsAndProbes(t *testing.T) {
	db := setupDB(t)
	old := time.Now().Add(-time.Hour)
	seed(t, db,
		models.Media{URL: baseURL + "/images/a.png", Title: "Stored A", Folder: "images", Format: "png", UploadedAt: old},
		models.Media{URL: baseURL + "/images/gone.png", Folder: "images/archive", Format: "png", UploadedAt: old.Add(-time.Hour)},
	)
	svc, client := newService(t, db)
	listing(client,
		minio.ObjectInfo{Key: "images/a.png", Size: 10, LastModified: old},
		minio.ObjectInfo{Key: "images/b-new.png", Size: 10, LastModified: time.Now()},
		minio.ObjectInfo{Key: "images/broken.png", Size: 10, LastModified: old.Add(-3 * time.Hour)},
		minio.ObjectInfo{Key: "videos/.keep"},
	)
	client.On("GetObject", mock.Anything, "media", "images/a.png", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(pngBytes(t, 12, 34))), nil).Once()
	client.On("GetObject", mock.Anything, "media", "images/b-new.png", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(pngBytes(t, 5, 6))), nil).Once()
	client.On("GetObject", mock.Anything, "media", "images/broken.png", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("garbage"))), nil).Once()

	out, err := svc.List(context.Background(), "")
	require.NoError(t, err)

	require.Equal(t, 4, out.Count)
	byURL := map[string]reconcile.Entry{}
	for _, e := range out.Images {
		byURL[e.URL] = e
	}

	a := byURL[baseURL+"/images/a.png"]
	assert.Equal(t, reconcile.StateSynced, a.State)
	assert.Equal(t, "Stored A", a.Title)
	require.NotNil(t, a.Width)
	assert.Equal(t, 12, *a.Width)
	assert.Equal(t, 34, *a.Height)

	b := byURL[baseURL+"/images/b-new.png"]
	assert.Equal(t, reconcile.StateMissingInDB, b.State)
	assert.Equal(t, "B New", b.Title)
	assert.Equal(t, 5, *b.Width)

	broken := byURL[baseURL+"/images/broken.png"]
	assert.Nil(t, broken.Width)
	assert.NotEmpty(t, broken.ProbeError)

	gone := byURL[baseURL+"/images/gone.png"]
	assert.Equal(t, reconcile.StateMissingInStorage, gone.State)

	assert.Equal(t, []string{"", "images", "images/archive", "videos"}, out.Folders)

	// probed dimensions were written back for the stored row only
	stored, err := media.NewStore(db).GetByURL(context.Background(), baseURL+"/images/a.png")
	require.NoError(t, err)
	require.True(t, stored.HasDimensions())
	assert.Equal(t, 12, *stored.Width)

	var count int64
	require.NoError(t, db.Model(&models.Media{}).Count(&count).Error)
	assert.Equal(t, int64(2), count, "listing must not insert rows")

	client.AssertExpectations(t)
}

func TestService_RepairIsIdempotent(t *testing.T) {
	db := setupDB(t)
	seed(t, db, models.Media{URL: "orphan", Folder: "images"})
	svc, client := newService(t, db)
	listing(client, minio.ObjectInfo{Key: "images/team/1699999999999-jane_doe-oYnXSVczoLvXLkKqZ7wJgFF7bJvE3o.png", Size: 7})

	plan, result, err := svc.Repair(context.Background(), "", reconcile.ReconcileOptions{Repair: true})
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Summary.InsertActions)
	assert.Equal(t, 1, plan.Summary.FlagActions)
	assert.Equal(t, 1, result.Executed)

	plan, result, err = svc.Repair(context.Background(), "", reconcile.ReconcileOptions{Repair: true})
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Summary.InsertActions)
	assert.Equal(t, 0, result.Executed)

	rec, err := media.NewStore(db).GetByURL(context.Background(), baseURL+"/images/team/1699999999999-jane_doe-oYnXSVczoLvXLkKqZ7wJgFF7bJvE3o.png")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", rec.Title)
	assert.Equal(t, "images/team", rec.Folder)

	// the orphan is still there until deletion is confirmed
	_, err = media.NewStore(db).GetByURL(context.Background(), "orphan")
	assert.NoError(t, err)

	_, result, err = svc.Repair(context.Background(), "", reconcile.ReconcileOptions{DeleteOrphans: true, Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Executed)
	_, err = media.NewStore(db).GetByURL(context.Background(), "orphan")
	assert.ErrorIs(t, err, media.ErrNotFound)
}

func TestService_Upload(t *testing.T) {
	db := setupDB(t)
	svc, client := newService(t, db)
	keyRe := regexp.MustCompile(`^images/team/[0-9]{13}-team-photo-[0-9a-f]{30}\.png$`)
	client.On("PutObject", mock.Anything, "media", mock.MatchedBy(keyRe.MatchString), mock.Anything, mock.Anything,
		mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == "image/png" })).
		Return(minio.UploadInfo{}, nil).Once()

	alt := "The team"
	rec, err := svc.Upload(context.Background(), media.UploadInput{
		Folder:   "/images/team/",
		Filename: "Team Photo.PNG",
		Body:     bytes.NewReader(pngBytes(t, 20, 10)),
		Text:     media.TextPayload{AltText: &alt},
	})

	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.Equal(t, "Team Photo", rec.Title)
	assert.Equal(t, "The team", rec.AltText)
	assert.Equal(t, "images/team", rec.Folder)
	assert.Equal(t, "png", rec.Format)
	require.True(t, rec.HasDimensions())
	assert.Equal(t, 20, *rec.Width)
	assert.Equal(t, 10, *rec.Height)

	key, ok := strippedKey(rec.URL)
	require.True(t, ok)
	assert.Equal(t, rec.Title, asset.Normalize(key, "").Title)
	client.AssertExpectations(t)
}

func strippedKey(url string) (string, bool) {
	if len(url) <= len(baseURL)+1 {
		return "", false
	}
	return url[len(baseURL)+1:], true
}

func TestService_UploadRollsBackWhenMetadataFails(t *testing.T) {
	svc, client := newService(t, nil)
	client.On("PutObject", mock.Anything, "media", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()
	client.On("RemoveObject", mock.Anything, "media", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := svc.Upload(context.Background(), media.UploadInput{
		Filename: "a.png",
		Body:     bytes.NewReader(pngBytes(t, 1, 1)),
	})

	assert.ErrorIs(t, err, reconcile.ErrMetadataUnavailable)
	client.AssertExpectations(t)
}

func TestService_UploadRejectsEmpty(t *testing.T) {
	svc, _ := newService(t, setupDB(t))

	_, err := svc.Upload(context.Background(), media.UploadInput{Filename: "a.png", Body: bytes.NewReader(nil)})
	assert.ErrorIs(t, err, media.ErrInvalidInput)

	_, err = svc.Upload(context.Background(), media.UploadInput{Filename: "!!!.png", Body: bytes.NewReader([]byte{1})})
	assert.ErrorIs(t, err, media.ErrInvalidInput)
}

func TestService_Update(t *testing.T) {
	db := setupDB(t)
	seed(t, db, models.Media{URL: "u", Title: "Old"})
	svc, _ := newService(t, db)

	_, err := svc.Update(context.Background(), 1, media.TextPayload{})
	assert.ErrorIs(t, err, media.ErrInvalidInput)

	title := "New"
	rec, err := svc.Update(context.Background(), 1, media.TextPayload{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", rec.Title)
}

func TestService_DeleteCascade(t *testing.T) {
	db := setupDB(t)
	seed(t, db,
		models.Media{URL: baseURL + "/images/a.png"},
		models.Media{URL: baseURL + "/images/b.png"},
		models.Media{URL: "https://elsewhere.example.com/c.png"},
	)
	svc, client := newService(t, db)
	client.On("RemoveObject", mock.Anything, "media", "images/a.png", mock.Anything).Return(nil).Once()
	client.On("RemoveObject", mock.Anything, "media", "images/b.png", mock.Anything).Return(errors.New("timeout")).Once()

	require.NoError(t, svc.Delete(context.Background(), 1, true))

	err := svc.Delete(context.Background(), 2, true)
	assert.ErrorIs(t, err, reconcile.ErrStorageUnavailable)
	_, err = svc.Get(context.Background(), 2)
	assert.NoError(t, err, "record stays when the object could not be removed")

	// a foreign URL is never touched in storage
	require.NoError(t, svc.Delete(context.Background(), 3, true))

	// without cascade storage is not called at all
	require.NoError(t, svc.Delete(context.Background(), 2, false))

	assert.ErrorIs(t, svc.Delete(context.Background(), 99, false), media.ErrNotFound)
	client.AssertExpectations(t)
}

func TestService_Move(t *testing.T) {
	db := setupDB(t)
	seed(t, db, models.Media{URL: baseURL + "/images/a.png", Folder: "images", Title: "A"})
	svc, client := newService(t, db)
	client.On("StatObject", mock.Anything, "media", "archive/2024/a.png", mock.Anything).
		Return(minio.ObjectInfo{}, mocks.NoSuchKey("archive/2024/a.png")).Once()
	client.On("CopyObject", mock.Anything,
		minio.CopyDestOptions{Bucket: "media", Object: "archive/2024/a.png"},
		minio.CopySrcOptions{Bucket: "media", Object: "images/a.png"},
	).Return(minio.UploadInfo{}, nil).Once()
	client.On("RemoveObject", mock.Anything, "media", "images/a.png", mock.Anything).Return(nil).Once()

	rec, err := svc.Move(context.Background(), 1, "archive/2024")

	require.NoError(t, err)
	assert.Equal(t, baseURL+"/archive/2024/a.png", rec.URL)
	assert.Equal(t, "archive/2024", rec.Folder)
	assert.Equal(t, "A", rec.Title)
	client.AssertExpectations(t)

	// moving into the same folder is a no-op
	same, err := svc.Move(context.Background(), 1, "archive/2024")
	require.NoError(t, err)
	assert.Equal(t, rec.URL, same.URL)
}

func TestService_MoveRejectsTakenTarget(t *testing.T) {
	t.Run("Row Exists", func(t *testing.T) {
		db := setupDB(t)
		seed(t, db,
			models.Media{URL: baseURL + "/images/logo.png", Folder: "images"},
			models.Media{URL: baseURL + "/brand/logo.png", Folder: "brand"},
		)
		svc, client := newService(t, db)

		_, err := svc.Move(context.Background(), 1, "brand")

		assert.ErrorIs(t, err, media.ErrConflict)
		client.AssertNotCalled(t, "CopyObject", mock.Anything, mock.Anything, mock.Anything)
		client.AssertNotCalled(t, "RemoveObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

		other, err := svc.Get(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, baseURL+"/brand/logo.png", other.URL)
		moved, err := svc.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, baseURL+"/images/logo.png", moved.URL)
	})

	t.Run("Object Exists Without Row", func(t *testing.T) {
		db := setupDB(t)
		seed(t, db, models.Media{URL: baseURL + "/images/logo.png", Folder: "images"})
		svc, client := newService(t, db)
		client.On("StatObject", mock.Anything, "media", "brand/logo.png", mock.Anything).
			Return(minio.ObjectInfo{Key: "brand/logo.png"}, nil).Once()

		_, err := svc.Move(context.Background(), 1, "brand")

		assert.ErrorIs(t, err, media.ErrConflict)
		client.AssertNotCalled(t, "CopyObject", mock.Anything, mock.Anything, mock.Anything)
		client.AssertNotCalled(t, "RemoveObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Stat Fails", func(t *testing.T) {
		db := setupDB(t)
		seed(t, db, models.Media{URL: baseURL + "/images/logo.png", Folder: "images"})
		svc, client := newService(t, db)
		client.On("StatObject", mock.Anything, "media", "brand/logo.png", mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("connection reset")).Once()

		_, err := svc.Move(context.Background(), 1, "brand")

		assert.ErrorIs(t, err, reconcile.ErrStorageUnavailable)
		client.AssertNotCalled(t, "CopyObject", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_CreateFolderAndFolders(t *testing.T) {
	svc, client := newService(t, setupDB(t))
	client.On("PutObject", mock.Anything, "media", "brand/logos/.keep", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()
	listing(client,
		minio.ObjectInfo{Key: "brand/logos/.keep"},
		minio.ObjectInfo{Key: "images/team/a.png"},
	)

	folder, err := svc.CreateFolder(context.Background(), "brand/logos/")
	require.NoError(t, err)
	assert.Equal(t, "brand/logos", folder)

	_, err = svc.CreateFolder(context.Background(), "")
	assert.ErrorIs(t, err, media.ErrInvalidInput)

	folders, err := svc.Folders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"", "brand", "brand/logos", "images", "images/team"}, folders)
	client.AssertExpectations(t)
}

func TestUploadKey(t *testing.T) {
	now := time.UnixMilli(1714564800000)

	key, err := media.UploadKey("images", "My Summer_Campaign.JPG", now)
	require.NoError(t, err)
	assert.Regexp(t, `^images/1714564800000-my-summer-campaign-[0-9a-f]{30}\.jpg$`, key)
	assert.Equal(t, "My Summer Campaign", asset.Normalize(key, "").Title)

	key, err = media.UploadKey("", `C:\fakepath\notes`, now)
	require.NoError(t, err)
	assert.Regexp(t, `^1714564800000-notes-[0-9a-f]{30}$`, key)

	key, err = media.UploadKey("images", "фото.png", now)
	require.NoError(t, err)
	assert.Regexp(t, `^images/1714564800000-[0-9a-f]{30}\.png$`, key)

	key, err = media.UploadKey("", "...", now)
	require.NoError(t, err)
	assert.Regexp(t, `^1714564800000-[0-9a-f]{30}$`, key)

	_, err = media.UploadKey("images", "", now)
	assert.ErrorIs(t, err, media.ErrInvalidInput)
}
