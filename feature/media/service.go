package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"media-manager/core/asset"
	"media-manager/core/probe"
	"media-manager/core/reconcile"
	"media-manager/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Listing is the joined view of one folder.
type Listing struct {
	Images  []reconcile.Entry `json:"images"`
	Folders []string          `json:"folders"`
	Count   int               `json:"count"`
}

// UploadInput describes a file to store.
type UploadInput struct {
	Folder      string
	Filename    string
	ContentType string
	Body        io.Reader
	Text        TextPayload
}

// Service handles media listing, auditing and editing.
type Service struct {
	client storage.Client
	bucket string
	urls   storage.URLMapper
	store  *Store
	lister *Lister
	engine *reconcile.Engine
	prober *probe.Prober
	logger *zap.Logger
}

// NewService wires the media service. db may be nil; metadata calls then
// fail with reconcile.ErrMetadataUnavailable.
func NewService(client storage.Client, storageCfg storage.Config, db *gorm.DB, cfg reconcile.Config, logger *zap.Logger) *Service {
	urls := storage.NewURLMapper(storageCfg)
	store := NewStore(db)
	lister := NewLister(client, storageCfg.Bucket, urls)

	return &Service{
		client: client,
		bucket: storageCfg.Bucket,
		urls:   urls,
		store:  store,
		lister: lister,
		engine: reconcile.NewEngine(lister, store, store, cfg, logger),
		prober: probe.NewProber(client, storageCfg.Bucket, cfg, logger),
		logger: logger,
	}
}

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger {
	return s.logger
}

// List joins storage and metadata for folder, probes missing image
// dimensions and builds the folder tree. Drift is reported, never repaired.
func (s *Service) List(ctx context.Context, folder string) (*Listing, error) {
	folder, err := CleanFolder(folder)
	if err != nil {
		return nil, err
	}

	snap, err := s.engine.Load(ctx, folder)
	if err != nil {
		return nil, err
	}

	entries := reconcile.Join(snap.Objects, snap.Records)
	s.fillDimensions(ctx, entries)

	return &Listing{
		Images:  entries,
		Folders: asset.BuildFolderTree(reconcile.Folders(entries, snap.Folders...)),
		Count:   len(entries),
	}, nil
}

// Folders returns the full folder tree, including empty placeholder folders.
func (s *Service) Folders(ctx context.Context) ([]string, error) {
	snap, err := s.engine.Load(ctx, "")
	if err != nil {
		return nil, err
	}
	entries := reconcile.Join(snap.Objects, snap.Records)
	return asset.BuildFolderTree(reconcile.Folders(entries, snap.Folders...)), nil
}

// fillDimensions probes every image entry without dimensions. Results are
// written back for entries that have a row; failures stay on the entry.
func (s *Service) fillDimensions(ctx context.Context, entries []reconcile.Entry) {
	var (
		idx  []int
		keys []string
	)
	for i, e := range entries {
		if e.NeedsDimensions() {
			idx = append(idx, i)
			keys = append(keys, e.Key)
		}
	}
	if len(keys) == 0 {
		return
	}

	for n, res := range s.prober.ProbeAll(ctx, keys) {
		e := &entries[idx[n]]
		if res.Err != nil {
			e.ProbeError = res.Err.Error()
			continue
		}
		e.Width, e.Height = res.Width, res.Height

		if e.State != reconcile.StateSynced || e.ID == 0 {
			continue
		}
		if err := s.store.UpdateDimensions(ctx, e.ID, *res.Width, *res.Height); err != nil {
			s.logger.Warn("Failed to persist dimensions", zap.String("url", e.URL), zap.Error(err))
		}
	}
}

// Audit reports drift for folder.
func (s *Service) Audit(ctx context.Context, folder string) (*reconcile.ReconcilePlan, error) {
	folder, err := CleanFolder(folder)
	if err != nil {
		return nil, err
	}
	return s.engine.Audit(ctx, folder)
}

// Repair reconciles folder and applies the repairs opts allow.
func (s *Service) Repair(ctx context.Context, folder string, opts reconcile.ReconcileOptions) (*reconcile.ReconcilePlan, *reconcile.ApplyResult, error) {
	folder, err := CleanFolder(folder)
	if err != nil {
		return nil, nil, err
	}
	return s.engine.Repair(ctx, folder, opts)
}

// Get returns one record.
func (s *Service) Get(ctx context.Context, id int64) (asset.Record, error) {
	return s.store.Get(ctx, id)
}

// Upload stores a file and records it. If the record cannot be written the
// object is removed again so the upload leaves no drift behind.
func (s *Service) Upload(ctx context.Context, in UploadInput) (asset.Record, error) {
	folder, err := CleanFolder(in.Folder)
	if err != nil {
		return asset.Record{}, err
	}

	key, err := UploadKey(folder, in.Filename, time.Now())
	if err != nil {
		return asset.Record{}, err
	}

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return asset.Record{}, fmt.Errorf("%w: read upload: %w", ErrInvalidInput, err)
	}
	if len(data) == 0 {
		return asset.Record{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	contentType := in.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeOf(key)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return asset.Record{}, fmt.Errorf("%w: put %s: %w", reconcile.ErrStorageUnavailable, key, err)
	}

	obj := asset.StorageObject{
		Key:         key,
		URL:         s.urls.URL(key),
		Size:        int64(len(data)),
		ContentType: contentType,
		UploadedAt:  time.Now().UTC(),
	}
	rec := asset.RecordFromObject(obj)
	if in.Text.Title != nil && *in.Text.Title != "" {
		rec.Title = *in.Text.Title
	}
	if in.Text.AltText != nil {
		rec.AltText = *in.Text.AltText
	}

	if asset.DetectMediaType(rec.Format, contentType) == asset.MediaImage {
		if w, h, _, err := probe.DecodeDimensions(bytes.NewReader(data)); err == nil {
			rec.Width, rec.Height = &w, &h
		} else {
			s.logger.Debug("Upload has no readable dimensions", zap.String("key", key), zap.Error(err))
		}
	}

	if err := s.store.UpsertRecord(ctx, rec); err != nil {
		s.removeQuietly(key)
		return asset.Record{}, err
	}

	saved, err := s.store.GetByURL(ctx, rec.URL)
	if err != nil {
		return asset.Record{}, err
	}

	s.logger.Info("Media uploaded", zap.String("key", key), zap.Int64("id", saved.ID), zap.Int64("size", saved.Size))
	return saved, nil
}

// Update edits title and alt text.
func (s *Service) Update(ctx context.Context, id int64, p TextPayload) (asset.Record, error) {
	if p.Empty() {
		return asset.Record{}, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	return s.store.UpdateText(ctx, id, p.Title, p.AltText)
}

// Delete removes a record. With cascade the object is removed first; a
// storage failure then leaves the record in place.
func (s *Service) Delete(ctx context.Context, id int64, cascade bool) error {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if cascade {
		if key, ok := s.urls.Key(rec.URL); ok {
			if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
				return fmt.Errorf("%w: remove %s: %w", reconcile.ErrStorageUnavailable, key, err)
			}
		} else {
			s.logger.Warn("Record URL is outside the bucket, object left alone", zap.String("url", rec.URL))
		}
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Media deleted", zap.Int64("id", id), zap.Bool("cascade", cascade))
	return nil
}

// Move copies the object into folder, repoints the record and removes the
// old object. The record is only changed once the copy exists.
func (s *Service) Move(ctx context.Context, id int64, folder string) (asset.Record, error) {
	folder, err := CleanFolder(folder)
	if err != nil {
		return asset.Record{}, err
	}

	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return asset.Record{}, err
	}

	oldKey, ok := s.urls.Key(rec.URL)
	if !ok {
		return asset.Record{}, fmt.Errorf("%w: %s is not in this bucket", ErrInvalidInput, rec.URL)
	}

	_, filename := asset.SplitKey(oldKey)
	newKey := path.Join(folder, filename)
	if newKey == oldKey {
		return rec, nil
	}

	newURL := s.urls.URL(newKey)
	if _, err := s.store.GetByURL(ctx, newURL); err == nil {
		return asset.Record{}, fmt.Errorf("%w: %s is already recorded", ErrConflict, newURL)
	} else if !errors.Is(err, ErrNotFound) {
		return asset.Record{}, err
	}

	taken, err := s.objectExists(ctx, newKey)
	if err != nil {
		return asset.Record{}, err
	}
	if taken {
		return asset.Record{}, fmt.Errorf("%w: %s is already stored", ErrConflict, newKey)
	}

	_, err = s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: newKey},
		minio.CopySrcOptions{Bucket: s.bucket, Object: oldKey},
	)
	if err != nil {
		return asset.Record{}, fmt.Errorf("%w: copy %s: %w", reconcile.ErrStorageUnavailable, oldKey, err)
	}

	moved, err := s.store.UpdateLocation(ctx, id, newURL, folder)
	if err != nil {
		// newKey was verified free above, so the copy is ours to remove.
		s.removeQuietly(newKey)
		return asset.Record{}, err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, oldKey, minio.RemoveObjectOptions{}); err != nil {
		// The record already points at the copy; the leftover shows up as
		// missing_in_db in the next audit.
		s.logger.Warn("Failed to remove moved object", zap.String("key", oldKey), zap.Error(err))
	}

	s.logger.Info("Media moved", zap.Int64("id", id), zap.String("from", oldKey), zap.String("to", newKey))
	return moved, nil
}

// CreateFolder writes the placeholder that keeps an empty folder visible.
func (s *Service) CreateFolder(ctx context.Context, folder string) (string, error) {
	folder, err := CleanFolder(folder)
	if err != nil {
		return "", err
	}
	if folder == "" {
		return "", fmt.Errorf("%w: folder path is required", ErrInvalidInput)
	}

	key := folder + "/" + asset.FolderMarker
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(nil), 0, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return "", fmt.Errorf("%w: put %s: %w", reconcile.ErrStorageUnavailable, key, err)
	}

	s.logger.Info("Folder created", zap.String("folder", folder))
	return folder, nil
}

// objectExists reports whether key is present in the bucket.
func (s *Service) objectExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, fmt.Errorf("%w: stat %s: %w", reconcile.ErrStorageUnavailable, key, err)
}

func (s *Service) removeQuietly(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Error("Failed to roll back object", zap.String("key", key), zap.Error(err))
	}
}

// UploadKey builds the storage key for an upload:
// folder/<unix millis>-<slug>-<random>.<ext>. Both the timestamp and the
// random token are stripped again when the title is derived. The slug is
// left out when the filename has nothing to build one from.
func UploadKey(folder, filename string, now time.Time) (string, error) {
	_, filename = asset.SplitKey(strings.ReplaceAll(filename, "\\", "/"))
	id := asset.Normalize(filename, "")

	base := filename
	if id.Extension != "" {
		base = strings.TrimSuffix(filename, filename[strings.LastIndex(filename, "."):])
	}
	if filename == "" {
		return "", fmt.Errorf("%w: filename is empty", ErrInvalidInput)
	}

	// Names without ASCII letters or digits keep only the token.
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:asset.RandomSuffixLength]
	name := fmt.Sprintf("%d-%s", now.UnixMilli(), token)
	if slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(base), "-"), "-"); slug != "" {
		name = fmt.Sprintf("%d-%s-%s", now.UnixMilli(), slug, token)
	}
	if id.Extension != "" {
		name += "." + id.Extension
	}
	return path.Join(folder, name), nil
}

func contentTypeOf(key string) string {
	return contentType(minio.ObjectInfo{Key: key})
}
