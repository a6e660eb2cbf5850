// Package photos stores candidate photos on disk. Uploads are decoded,
// scaled down to a display size and re-encoded as JPEG, so whatever a
// committee member uploads comes out uniform.
package photos

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	maxUploadBytes = 5 << 20
	photoWidth     = 480
	photoHeight    = 640
	jpegQuality    = 85
)

var (
	ErrTooLarge          = errors.New("photo exceeds the 5 MB upload limit")
	ErrUnsupportedFormat = errors.New("photo must be a JPEG or PNG image")
	ErrPhotoNotFound     = errors.New("photo not found")
)

// Member numbers become file names, so they are restricted hard.
var safeMemberNo = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Store keeps candidate photos under a single directory, one JPEG per
// member number.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save processes and stores an uploaded photo, replacing any existing
// photo for the member. Returns the stored file name.
func (s *Store) Save(memberNo string, data []byte) (string, error) {
	memberNo = strings.TrimSpace(memberNo)
	if !safeMemberNo.MatchString(memberNo) {
		return "", fmt.Errorf("invalid member number %q", memberNo)
	}
	if len(data) == 0 {
		return "", ErrUnsupportedFormat
	}
	if len(data) > maxUploadBytes {
		return "", ErrTooLarge
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if format != "jpeg" && format != "png" {
		return "", fmt.Errorf("%w: got %s", ErrUnsupportedFormat, format)
	}

	processed := imaging.Fit(img, photoWidth, photoHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode photo: %w", err)
	}

	name := memberNo + ".jpg"
	tmp := filepath.Join(s.dir, name+".tmp")
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to store photo: %w", err)
	}
	return name, nil
}

// Path returns the on-disk path for a member's photo.
func (s *Store) Path(memberNo string) (string, error) {
	memberNo = strings.TrimSpace(memberNo)
	if !safeMemberNo.MatchString(memberNo) {
		return "", ErrPhotoNotFound
	}
	path := filepath.Join(s.dir, memberNo+".jpg")
	if _, err := os.Stat(path); err != nil {
		return "", ErrPhotoNotFound
	}
	return path, nil
}

// Remove deletes a member's photo. Removing an absent photo is fine.
func (s *Store) Remove(memberNo string) error {
	memberNo = strings.TrimSpace(memberNo)
	if !safeMemberNo.MatchString(memberNo) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, memberNo+".jpg"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove photo: %w", err)
	}
	return nil
}
