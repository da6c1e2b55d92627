package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// maxImageSize bounds the longer edge of stored recipe images.
const maxImageSize = 1024

// ImageStore persists an encoded image under a key and returns the reference
// stored on the recipe row.
type ImageStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// LocalImageStore writes images under a media directory on disk.
type LocalImageStore struct {
	Dir     string
	BaseURL string
}

func (s *LocalImageStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	full := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return strings.TrimRight(s.BaseURL, "/") + "/" + key, nil
}

// ImageService decodes base64 recipe image payloads, bounds their size and
// hands them to the configured store.
type ImageService struct {
	store ImageStore
}

func NewImageService(store ImageStore) *ImageService {
	return &ImageService{store: store}
}

// StoreDataURI accepts a "data:image/...;base64," payload (or bare base64),
// re-encodes it as a bounded JPEG and stores it under recipes/. Returns the
// stored reference.
func (s *ImageService) StoreDataURI(ctx context.Context, dataURI string) (string, error) {
	payload := dataURI
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return "", fmt.Errorf("malformed data URI")
		}
		payload = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode image payload: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > maxImageSize || bounds.Dy() > maxImageSize {
		img = imaging.Fit(img, maxImageSize, maxImageSize, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	key := path.Join("recipes", uuid.New().String()+".jpg")
	return s.store.Save(ctx, key, buf.Bytes(), "image/jpeg")
}
