package media

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"media-manager/core/asset"
	"media-manager/core/reconcile"
	"media-manager/feature/media/models"

	"gorm.io/gorm"
)

// Store reads and writes the media table.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store. A nil db makes every call fail with
// reconcile.ErrMetadataUnavailable.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	if s.db == nil {
		return nil, fmt.Errorf("%w: no database connection", reconcile.ErrMetadataUnavailable)
	}
	return s.db.WithContext(ctx), nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", reconcile.ErrMetadataUnavailable, op, err)
}

// List returns records newest first. A non-empty folder limits the result to
// that folder and its subfolders.
func (s *Store) List(ctx context.Context, folder string) ([]asset.Record, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&models.Media{})
	if folder != "" {
		prefix := folder + "/"
		query = query.Where("folder = ? OR SUBSTR(folder, 1, ?) = ?", folder, utf8.RuneCountInString(prefix), prefix)
	}

	var rows []models.Media
	if err := query.Order("uploaded_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, unavailable("list media", err)
	}

	records := make([]asset.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.ToRecord())
	}
	return records, nil
}

// Get returns the record with id.
func (s *Store) Get(ctx context.Context, id int64) (asset.Record, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return asset.Record{}, err
	}

	var row models.Media
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return asset.Record{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return asset.Record{}, unavailable("get media", err)
	}
	return row.ToRecord(), nil
}

// GetByURL returns the oldest record with url.
func (s *Store) GetByURL(ctx context.Context, url string) (asset.Record, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return asset.Record{}, err
	}

	var row models.Media
	if err := db.Where("url = ?", url).Order("id ASC").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return asset.Record{}, fmt.Errorf("%w: url %s", ErrNotFound, url)
		}
		return asset.Record{}, unavailable("get media by url", err)
	}
	return row.ToRecord(), nil
}

// UpsertRecord inserts rec, or refreshes the storage-derived columns of the
// row that already has its URL. The lookup runs first so tables without the
// unique url index stay duplicate free; a duplicate key on insert means a
// concurrent writer won the race, and the row it wrote is refreshed instead.
func (s *Store) UpsertRecord(ctx context.Context, rec asset.Record) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	id, err := s.idByURL(db, rec.URL)
	if err != nil {
		return err
	}

	if id == 0 {
		row := models.FromRecord(rec)
		row.ID = 0
		err := db.Create(&row).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return unavailable("insert media", err)
		}
		if id, err = s.idByURL(db, rec.URL); err != nil {
			return err
		}
	}

	err = db.Model(&models.Media{}).Where("id = ?", id).Updates(map[string]any{
		"size":       rec.Size,
		"format":     rec.Format,
		"folder":     rec.Folder,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return unavailable("update media", err)
	}
	return nil
}

func (s *Store) idByURL(db *gorm.DB, url string) (int64, error) {
	var ids []int64
	if err := db.Model(&models.Media{}).Where("url = ?", url).Order("id ASC").Limit(1).Pluck("id", &ids).Error; err != nil {
		return 0, unavailable("lookup media", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}

// UpdateText sets title and/or alt text. nil leaves a field unchanged.
func (s *Store) UpdateText(ctx context.Context, id int64, title, altText *string) (asset.Record, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return asset.Record{}, err
	}

	updates := map[string]any{"updated_at": time.Now()}
	if title != nil {
		updates["title"] = *title
	}
	if altText != nil {
		updates["alt_text"] = *altText
	}

	res := db.Model(&models.Media{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return asset.Record{}, unavailable("update media text", res.Error)
	}
	if res.RowsAffected == 0 {
		return asset.Record{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.Get(ctx, id)
}

// UpdateDimensions stores probed width and height.
func (s *Store) UpdateDimensions(ctx context.Context, id int64, width, height int) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	err = db.Model(&models.Media{}).Where("id = ?", id).Updates(map[string]any{
		"width":  width,
		"height": height,
	}).Error
	if err != nil {
		return unavailable("update media dimensions", err)
	}
	return nil
}

// UpdateLocation points a record at a moved object.
func (s *Store) UpdateLocation(ctx context.Context, id int64, url, folder string) (asset.Record, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return asset.Record{}, err
	}

	res := db.Model(&models.Media{}).Where("id = ?", id).Updates(map[string]any{
		"url":        url,
		"folder":     folder,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return asset.Record{}, unavailable("move media", res.Error)
	}
	if res.RowsAffected == 0 {
		return asset.Record{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.Get(ctx, id)
}

// Delete removes the record with id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	res := db.Where("id = ?", id).Delete(&models.Media{})
	if res.Error != nil {
		return unavailable("delete media", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// DeleteRecordByURL removes every record with url. Nothing to delete is not
// an error, so repeated repairs are no-ops.
func (s *Store) DeleteRecordByURL(ctx context.Context, url string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	if err := db.Where("url = ?", url).Delete(&models.Media{}).Error; err != nil {
		return unavailable("delete media by url", err)
	}
	return nil
}
