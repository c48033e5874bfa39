package asset

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FolderMarker is the final segment of placeholder objects that only exist to
// keep an empty folder visible.
const FolderMarker = ".keep"

// RandomSuffixLength is the length of the opaque token the storage backend
// appends to uploaded filenames ("name-<token>.ext").
const RandomSuffixLength = 30

var (
	randomSuffixRe    = regexp.MustCompile(`-[A-Za-z0-9]{30}$`)
	timestampPrefixRe = regexp.MustCompile(`^[0-9]{10,}[-_]`)
	whitespaceRe      = regexp.MustCompile(`\s+`)
)

var videoExtensions = map[string]struct{}{
	"mp4": {}, "webm": {}, "mov": {}, "m4v": {}, "avi": {}, "mkv": {}, "ogv": {},
}

// Identity is the display identity derived from an object key.
type Identity struct {
	Title     string    `json:"title"`
	Folder    string    `json:"folder"`
	Extension string    `json:"extension"`
	MediaType MediaType `json:"mediaType"`
}

// Normalize derives the display identity of key. contentType may be empty.
func Normalize(key, contentType string) Identity {
	folder, filename := SplitKey(key)

	base, ext := filename, ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		base, ext = filename[:i], strings.ToLower(filename[i+1:])
	}

	return Identity{
		Title:     titleFromBase(base),
		Folder:    folder,
		Extension: ext,
		MediaType: DetectMediaType(ext, contentType),
	}
}

// SplitKey splits key into its folder path and filename.
func SplitKey(key string) (folder, filename string) {
	i := strings.LastIndex(key, "/")
	if i < 0 {
		return "", key
	}
	return key[:i], key[i+1:]
}

// DetectMediaType classifies by extension first, then by content type.
func DetectMediaType(ext, contentType string) MediaType {
	if _, ok := videoExtensions[strings.ToLower(ext)]; ok {
		return MediaVideo
	}
	if strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return MediaVideo
	}
	return MediaImage
}

// IsFolderMarker reports whether key is a placeholder rather than media.
func IsFolderMarker(key string) bool {
	if key == "" || strings.HasSuffix(key, "/") {
		return true
	}
	_, name := SplitKey(key)
	return name == FolderMarker
}

func titleFromBase(base string) string {
	s := randomSuffixRe.ReplaceAllString(base, "")
	if s == "" {
		s = base
	}
	if stripped := timestampPrefixRe.ReplaceAllString(s, ""); stripped != "" {
		s = stripped
	}
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
	if s == "" {
		return ""
	}
	// Casers are stateful; one per call keeps Normalize safe for concurrent use.
	return cases.Title(language.Und, cases.NoLower).String(s)
}
