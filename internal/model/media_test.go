package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     MediaKind
		ok       bool
	}{
		{"photo.jpg", KindImage, true},
		{"photo.JPEG", KindImage, true},
		{"scan.png", KindImage, true},
		{"anim.gif", KindImage, true},
		{"shot.webp", KindImage, true},
		{"old.bmp", KindImage, true},
		{"clip.mp4", KindVideo, true},
		{"clip.MOV", KindVideo, true},
		{"clip.avi", KindVideo, true},
		{"clip.webm", KindVideo, true},
		{"clip.mkv", KindVideo, true},
		{"notes.txt", "", false},
		{"archive.tar.gz", "", false},
		{"noextension", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			kind, ok := KindFromFilename(tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(0, 0))
	assert.True(t, ValidCoordinates(-90, -180))
	assert.True(t, ValidCoordinates(90, 180))
	assert.True(t, ValidCoordinates(37.7749, -122.4194))

	assert.False(t, ValidCoordinates(90.0001, 0))
	assert.False(t, ValidCoordinates(-90.0001, 0))
	assert.False(t, ValidCoordinates(0, 180.0001))
	assert.False(t, ValidCoordinates(0, -180.0001))
}
