// Package imagestore keeps downloaded portraits on disk, named after the person.
package imagestore

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/ersonp/wikipeople/internal/domain/entities"
)

// thumbDir is the subdirectory holding thumbnails.
const thumbDir = "thumbs"

// FileStore implements ports.ImageStore on a directory.
type FileStore struct {
	dir       string
	thumbSize int
	log       logrus.FieldLogger
}

// NewFileStore creates a store rooted at dir. A positive thumbSize also writes a
// JPEG thumbnail that fits in a thumbSize square next to every saved portrait.
func NewFileStore(dir string, thumbSize int, log logrus.FieldLogger) *FileStore {
	return &FileStore{dir: dir, thumbSize: thumbSize, log: log}
}

var titleReplacer = strings.NewReplacer(" ", "_", `"`, "", "/", "_")

// CleanTitle turns a title into a file stem: spaces and slashes become
// underscores and double quotes are dropped.
func CleanTitle(title string) string {
	return titleReplacer.Replace(title)
}

// Path returns where a portrait with suffix would be stored.
func (s *FileStore) Path(title, suffix string) string {
	return filepath.Join(s.dir, CleanTitle(title)+"."+suffix)
}

// Find returns the first existing portrait for title across the supported suffixes.
func (s *FileStore) Find(title string) (string, bool) {
	for _, suffix := range entities.SupportedImageSuffixes {
		path := s.Path(title, suffix)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Save writes data and returns its path. A thumbnail failure is logged and does
// not fail the save.
func (s *FileStore) Save(title, suffix string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}

	path := s.Path(title, suffix)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}

	if s.thumbSize > 0 {
		if thumb, err := s.writeThumbnail(title, data); err != nil {
			s.log.WithError(err).WithField("title", title).Warn("Could not create thumbnail")
		} else {
			s.log.WithField("path", thumb).Debug("Thumbnail written")
		}
	}

	return path, nil
}

// ThumbnailPath returns where the thumbnail of title is written.
func (s *FileStore) ThumbnailPath(title string) string {
	return filepath.Join(s.dir, thumbDir, CleanTitle(title)+".jpg")
}

func (s *FileStore) writeThumbnail(title string, data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(s.dir, thumbDir), 0755); err != nil {
		return "", fmt.Errorf("creating thumbnail directory: %w", err)
	}

	thumb := imaging.Fit(img, s.thumbSize, s.thumbSize, imaging.Lanczos)
	path := s.ThumbnailPath(title)
	if err := imaging.Save(thumb, path, imaging.JPEGQuality(80)); err != nil {
		return "", fmt.Errorf("saving thumbnail: %w", err)
	}
	return path, nil
}
