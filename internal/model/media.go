package model

import (
	"path/filepath"
	"strings"
	"time"
)

// MediaKind tells the viewer how to render a record.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// Extensions accepted by the upload widget, lowercased, without dots.
var (
	imageExtensions = map[string]struct{}{
		"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {}, "bmp": {},
	}
	videoExtensions = map[string]struct{}{
		"mp4": {}, "mov": {}, "avi": {}, "webm": {}, "mkv": {},
	}
)

// KindFromFilename derives the media kind from the file extension.
// The second return value is false when the extension maps to neither
// an image nor a video format.
func KindFromFilename(name string) (MediaKind, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if _, ok := imageExtensions[ext]; ok {
		return KindImage, true
	}
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo, true
	}
	return "", false
}

// MediaRecord represents one uploaded photo or video with its GPS tag.
// This is a pure domain model with no persistence-specific dependencies;
// the json tags define the field names of the persisted manifest document.
// Records are immutable after creation: correcting a coordinate means
// delete + re-create.
type MediaRecord struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Kind          MediaKind `json:"type"`
	StoragePath   string    `json:"path"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
	Latitude      float64   `json:"lat"`
	Longitude     float64   `json:"lon"`
	ProjectID     string    `json:"project_id,omitempty"`
	CreatedAt     time.Time `json:"timestamp"`
}

// ValidCoordinates reports whether lat/lon are inside the WGS84 ranges.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
