package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	UniqueImageName(t time.Time) (string, error)
}

type utils struct {
	maxFileSize int64
}

func New() IUtils {
	return &utils{
		maxFileSize: 10 * 1024 * 1024,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return errors.New("no file uploaded")
	}

	if file.Size > u.maxFileSize {
		return errors.New("file size exceeds limit")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return errors.New("uploaded file is not an image")
	}

	return nil
}

// UniqueImageName builds a timestamped jpg filename that cannot collide
// across concurrent requests.
func (u *utils) UniqueImageName(t time.Time) (string, error) {
	id, err := u.NewULIDFromTimestamp(t)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s_%s.jpg", t.Format("20060102_150405"), id), nil
}
