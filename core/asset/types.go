package asset

import "time"

// MediaType classifies an object for display and probing.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// StorageObject is one object in the blob backend.
type StorageObject struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Record is one row of the media metadata table.
type Record struct {
	ID         int64     `json:"id"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	AltText    string    `json:"altText"`
	Folder     string    `json:"folder"`
	Width      *int      `json:"width"`
	Height     *int      `json:"height"`
	Size       int64     `json:"size"`
	Format     string    `json:"format"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// HasDimensions reports whether both width and height are known.
func (r Record) HasDimensions() bool {
	return r.Width != nil && r.Height != nil
}

// RecordFromObject synthesizes the metadata row for an object that has none.
// Identity comes from the key; the URL is carried over untouched.
func RecordFromObject(obj StorageObject) Record {
	n := Normalize(obj.Key, obj.ContentType)
	return Record{
		URL:        obj.URL,
		Title:      n.Title,
		Folder:     n.Folder,
		Size:       obj.Size,
		Format:     n.Extension,
		UploadedAt: obj.UploadedAt,
	}
}
