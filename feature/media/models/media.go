package models

import (
	"time"

	"media-manager/core/asset"
)

// Media represents one row of the 'media' table.
type Media struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	URL        string    `gorm:"column:url;size:1024;not null;uniqueIndex:idx_media_url"`
	Title      string    `gorm:"column:title;not null"`
	AltText    string    `gorm:"column:alt_text;not null"`
	Folder     string    `gorm:"column:folder;size:512;not null;index:idx_media_folder"`
	Width      *int      `gorm:"column:width"`
	Height     *int      `gorm:"column:height"`
	Size       int64     `gorm:"column:size;not null"`
	Format     string    `gorm:"column:format;size:32;not null"`
	UploadedAt time.Time `gorm:"column:uploaded_at;not null;autoCreateTime;index:idx_media_uploaded_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (Media) TableName() string {
	return "media"
}

// ToRecord converts the row to the storage-independent record.
func (m Media) ToRecord() asset.Record {
	return asset.Record{
		ID:         m.ID,
		URL:        m.URL,
		Title:      m.Title,
		AltText:    m.AltText,
		Folder:     m.Folder,
		Width:      m.Width,
		Height:     m.Height,
		Size:       m.Size,
		Format:     m.Format,
		UploadedAt: m.UploadedAt,
	}
}

// FromRecord builds a row from a record. ID is carried over as is.
func FromRecord(r asset.Record) Media {
	return Media{
		ID:         r.ID,
		URL:        r.URL,
		Title:      r.Title,
		AltText:    r.AltText,
		Folder:     r.Folder,
		Width:      r.Width,
		Height:     r.Height,
		Size:       r.Size,
		Format:     r.Format,
		UploadedAt: r.UploadedAt,
	}
}
