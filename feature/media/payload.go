package media

import (
	"fmt"
	"strings"

	"media-manager/core/asset"
	"media-manager/core/utils"

	"github.com/goccy/go-json"
)

// altTextKeys are the spellings clients use for the alt text field.
var altTextKeys = []string{"alt", "altText", "alt_text"}

// TextPayload carries an edit of the human-maintained fields. nil means the
// field was not sent.
type TextPayload struct {
	Title   *string `json:"title,omitempty"`
	AltText *string `json:"altText,omitempty"`
}

// Empty reports whether the payload changes nothing.
func (p TextPayload) Empty() bool {
	return p.Title == nil && p.AltText == nil
}

// PayloadFromJSON decodes a JSON edit body, accepting every alt text spelling.
func PayloadFromJSON(body []byte) (TextPayload, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return TextPayload{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return payloadFromMap(raw), nil
}

// PayloadFromForm reads the same fields from form values. value returns ""
// for absent fields, so empty values count as not sent.
func PayloadFromForm(value func(key string) string) TextPayload {
	raw := make(map[string]any)
	for _, k := range append([]string{"title"}, altTextKeys...) {
		if v := strings.TrimSpace(value(k)); v != "" {
			raw[k] = v
		}
	}
	return payloadFromMap(raw)
}

func payloadFromMap(raw map[string]any) TextPayload {
	var p TextPayload
	if v, ok := utils.FirstString(raw, "title"); ok {
		v = strings.TrimSpace(v)
		p.Title = &v
	}
	if v, ok := utils.FirstString(raw, altTextKeys...); ok {
		v = strings.TrimSpace(v)
		p.AltText = &v
	}
	return p
}

// MovePayload is the body of a move request.
type MovePayload struct {
	Folder string `json:"folder"`
}

// FolderPayload is the body of a create folder request.
type FolderPayload struct {
	Path string `json:"path"`
}

// CleanFolder normalizes a folder path: surrounding slashes and whitespace
// are dropped, empty means the root. Relative segments are rejected.
func CleanFolder(folder string) (string, error) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return "", nil
	}
	for _, seg := range strings.Split(folder, "/") {
		switch {
		case seg == "", seg == ".", seg == "..":
			return "", fmt.Errorf("%w: bad folder %q", ErrInvalidInput, folder)
		case seg == asset.FolderMarker:
			return "", fmt.Errorf("%w: reserved folder name %q", ErrInvalidInput, seg)
		case strings.ContainsAny(seg, "\\?#"):
			return "", fmt.Errorf("%w: bad character in folder %q", ErrInvalidInput, folder)
		}
	}
	return folder, nil
}
